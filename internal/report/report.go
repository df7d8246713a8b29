// Package report renders run results into artifacts: SVG plots and a
// deterministic summary log, written once into the run directory.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/gwflux/internal/pipeline"
	"github.com/san-kum/gwflux/internal/spectral"
)

// Plot artifact geometry and colors.
const (
	plotWidth  = 900
	plotHeight = 360

	strainColor  = "#e0e0e0"
	specColor    = "#b36bff"
	fluxColor    = "#ff9d45"
	forceColor   = "#5b8dff"
	maxPlotFreq  = 1000.0 // Hz, upper bound of the spectrum plot
	summaryLines = "=== Summary of Results ===\n"
)

// WriteError reports a failure persisting an artifact.
type WriteError struct {
	Path    string
	Wrapped error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("report: write %s: %v", e.Path, e.Wrapped)
}

func (e *WriteError) Unwrap() error { return e.Wrapped }

// WriteArtifacts renders every plot and the summary log for a run into
// dir. It stops at the first failure.
func WriteArtifacts(dir string, result *pipeline.Result) error {
	seg := result.Segment
	dt := seg.Dt()

	times := make([]float64, len(seg.Samples))
	for i := range times {
		times[i] = float64(i) * dt
	}
	if err := writeFile(filepath.Join(dir, "strain.svg"),
		LineSVG(times, seg.Samples, plotWidth, plotHeight, strainColor)); err != nil {
		return err
	}

	amps, freqs := spectral.Amplitude(seg.Samples, seg.Rate)
	hi := len(freqs)
	for i, f := range freqs {
		if f > maxPlotFreq {
			hi = i
			break
		}
	}
	if err := writeFile(filepath.Join(dir, "spectrum.svg"),
		LineSVG(freqs[:hi], amps[:hi], plotWidth, plotHeight, specColor)); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, "entropy_flux.svg"),
		LineSVG(result.Times, result.Series[pipeline.SeriesEntropyFlux], plotWidth, plotHeight, fluxColor)); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "info_force.svg"),
		LineSVG(result.Times, result.Series[pipeline.SeriesInfoForce], plotWidth, plotHeight, forceColor)); err != nil {
		return err
	}

	path := filepath.Join(dir, "summary.txt")
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Wrapped: err}
	}
	defer f.Close()
	if err := WriteSummary(f, result.Summary); err != nil {
		return &WriteError{Path: path, Wrapped: err}
	}

	return nil
}

// WriteSummary prints the whole-segment quantities in the fixed order
// and precision used by the summary artifact, so identical runs produce
// identical logs.
func WriteSummary(w io.Writer, summary map[string]float64) error {
	lines := []struct {
		label string
		key   string
	}{
		{"Energy Dissipation (J)", pipeline.SummaryEnergy},
		{"Hawking Temperature (K)", pipeline.SummaryHawkingTemp},
		{"Entropy Flux (J/K/s)", pipeline.SummaryEntropyFlux},
		{"Information Force (N)", pipeline.SummaryInfoForce},
		{"Pressure (Pa)", pipeline.SummaryInfoPressure},
		{"Energy Flow Rate (W)", pipeline.SummaryEnergyFlowRate},
		{"Dominant Frequency (Hz)", pipeline.SummaryDominantFreq},
		{"Spectral Entropy", pipeline.SummarySpectralEnt},
	}

	if _, err := io.WriteString(w, summaryLines); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %.4e\n", l.label, summary[l.key]); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string) error {
	if content == "" {
		return &WriteError{Path: path, Wrapped: fmt.Errorf("empty plot")}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &WriteError{Path: path, Wrapped: err}
	}
	return nil
}
