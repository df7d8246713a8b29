package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gwflux/internal/config"
	"github.com/san-kum/gwflux/internal/dsp"
	"github.com/san-kum/gwflux/internal/physics"
	"github.com/san-kum/gwflux/internal/spectral"
	"github.com/san-kum/gwflux/internal/strain"
)

// Per-window metric series names.
const (
	SeriesEntropyFlux = "entropy_flux"
	SeriesInfoForce   = "info_force"
)

// Whole-segment summary keys.
const (
	SummaryEnergy         = "energy_dissipation"
	SummaryHawkingTemp    = "hawking_temperature"
	SummaryEntropyFlux    = "entropy_flux"
	SummaryInfoForce      = "info_force"
	SummaryInfoPressure   = "info_pressure"
	SummaryEnergyFlowRate = "energy_flow_rate"
	SummaryDominantFreq   = "dominant_frequency"
	SummarySpectralEnt    = "spectral_entropy"
)

// ComputationError reports non-finite data reaching a metric formula.
type ComputationError struct {
	Window  int
	Time    float64
	Message string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("window %d (t=%.4f): %s", e.Window, e.Time, e.Message)
}

// Result holds everything one run produces. Series values are indexed in
// step with Times (one entry per window center).
type Result struct {
	Times   []float64
	Series  map[string][]float64
	Summary map[string]float64

	// Segment is the preprocessed series the metrics were computed from.
	Segment *strain.Series
}

// Run executes the full pipeline on a loaded series.
func Run(ctx context.Context, s *strain.Series, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seg, err := s.Segment(cfg.Segment.Start, cfg.Segment.End)
	if err != nil {
		return nil, err
	}

	seg = preprocess(seg, cfg)

	winLen := int(cfg.Window.Size * seg.Rate)
	stepLen := int(cfg.Window.Step * seg.Rate)
	if winLen <= 0 || winLen > len(seg.Samples) {
		return nil, fmt.Errorf("pipeline: window of %gs does not fit segment of %gs", cfg.Window.Size, seg.Duration())
	}
	if stepLen <= 0 {
		stepLen = 1
	}

	dt := seg.Dt()
	temp := physics.HawkingTemperature(cfg.Source.Mass)

	windows := seg.Windows(winLen, stepLen)
	result := &Result{
		Times: make([]float64, 0, len(windows)),
		Series: map[string][]float64{
			SeriesEntropyFlux: make([]float64, 0, len(windows)),
			SeriesInfoForce:   make([]float64, 0, len(windows)),
		},
		Summary: make(map[string]float64),
		Segment: seg,
	}

	for _, w := range windows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if i, bad := firstNonFinite(w.Samples); bad {
			return nil, &ComputationError{
				Window:  w.Index,
				Time:    seg.Time(w.Start + i),
				Message: "non-finite strain sample",
			}
		}

		dE := physics.EnergyDissipation(w.Samples, dt)
		phi := physics.EntropyFlux(dE, temp)
		force := physics.InformationForce(cfg.Source.Mass, cfg.Source.CarrierVelocity, phi)

		result.Times = append(result.Times, cfg.Segment.Start+w.Center)
		result.Series[SeriesEntropyFlux] = append(result.Series[SeriesEntropyFlux], phi)
		result.Series[SeriesInfoForce] = append(result.Series[SeriesInfoForce], force)
	}

	// Windows cover the segment up to the last partial step; the summary
	// sees every sample, so scan the remainder too.
	if i, bad := firstNonFinite(seg.Samples); bad {
		return nil, &ComputationError{
			Window:  -1,
			Time:    seg.Time(i),
			Message: "non-finite strain sample in segment",
		}
	}

	totalEnergy := physics.EnergyDissipation(seg.Samples, dt)
	phiTotal := physics.EntropyFlux(totalEnergy, temp)
	forceTotal := physics.InformationForce(cfg.Source.Mass, cfg.Source.CarrierVelocity, phiTotal)

	result.Summary[SummaryEnergy] = totalEnergy
	result.Summary[SummaryHawkingTemp] = temp
	result.Summary[SummaryEntropyFlux] = phiTotal
	result.Summary[SummaryInfoForce] = forceTotal
	result.Summary[SummaryInfoPressure] = physics.InfoPressure(forceTotal, cfg.Source.CarrierVelocity)
	result.Summary[SummaryEnergyFlowRate] = physics.EnergyFlowRate(temp, phiTotal)
	result.Summary[SummaryDominantFreq] = spectral.DominantFrequency(seg.Samples, seg.Rate)
	result.Summary[SummarySpectralEnt] = spectral.Entropy(seg.Samples, seg.Rate)

	return result, nil
}

func preprocess(seg *strain.Series, cfg *config.Config) *strain.Series {
	samples := seg.Samples
	changed := false
	if cfg.Preprocess.Detrend {
		samples = dsp.Detrend(samples)
		changed = true
	}
	if cfg.Bandpass() {
		samples = dsp.Bandpass(samples, seg.Rate, cfg.Preprocess.BandLow, cfg.Preprocess.BandHigh)
		changed = true
	}
	if cfg.Preprocess.Whiten {
		samples = dsp.Whiten(samples, seg.Rate)
		changed = true
	}
	if !changed {
		return seg
	}
	return &strain.Series{Samples: samples, Rate: seg.Rate, GPSStart: seg.GPSStart}
}

func firstNonFinite(x []float64) (int, bool) {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i, true
		}
	}
	return 0, false
}
