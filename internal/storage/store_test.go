package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gwflux/internal/config"
	"github.com/san-kum/gwflux/internal/pipeline"
	"github.com/san-kum/gwflux/internal/strain"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Times: []float64{0.405, 0.407},
		Series: map[string][]float64{
			pipeline.SeriesEntropyFlux: {1.5e-34, 2.5e-34},
			pipeline.SeriesInfoForce:   {3.0e-60, 4.0e-60},
		},
		Summary: map[string]float64{
			pipeline.SummaryEnergy:      4.2e-40,
			pipeline.SummaryHawkingTemp: 7.7e-7,
		},
		Segment: strain.New(make([]float64, 16), 16384, 1126259447.4),
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	runID, err := st.Save(cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Input != cfg.Input {
		t.Errorf("expected input %q, got %q", cfg.Input, meta.Input)
	}
	if meta.Summary[pipeline.SummaryEnergy] != 4.2e-40 {
		t.Errorf("expected summary energy 4.2e-40, got %e", meta.Summary[pipeline.SummaryEnergy])
	}
	if meta.GPSStart != 1126259447.4 {
		t.Errorf("expected GPS start of the segment, got %f", meta.GPSStart)
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(times) != 2 {
		t.Errorf("expected 2 rows, got %d", len(times))
	}
	if got := series[pipeline.SeriesEntropyFlux][1]; got != 2.5e-34 {
		t.Errorf("expected entropy flux 2.5e-34, got %e", got)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(config.DefaultConfig(), sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if st.Dir(runID) != runDir {
		t.Errorf("Dir(%q) = %q, want %q", runID, st.Dir(runID), runDir)
	}
	for _, name := range []string{"metadata.json", "series.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestSeriesCSV_Reproducible(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	idA, err := st.Save(config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	idB, err := st.Save(config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if idA == idB {
		t.Fatalf("back-to-back saves returned the same run id %q", idA)
	}

	a, err := os.ReadFile(filepath.Join(st.Dir(idA), "series.csv"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(st.Dir(idB), "series.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("series.csv differs between identical runs")
	}
}

func TestStoreSaveSameSecond(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	first := sampleResult()
	idA, err := st.Save(config.DefaultConfig(), first)
	if err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(filepath.Join(st.Dir(idA), "series.csv"))
	if err != nil {
		t.Fatal(err)
	}

	second := sampleResult()
	second.Series[pipeline.SeriesEntropyFlux] = []float64{9.0e-34, 9.5e-34}
	idB, err := st.Save(config.DefaultConfig(), second)
	if err != nil {
		t.Fatal(err)
	}
	if idA == idB {
		t.Fatalf("back-to-back saves returned the same run id %q", idA)
	}

	after, err := os.ReadFile(filepath.Join(st.Dir(idA), "series.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("first run's series.csv changed after a later save")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(config.DefaultConfig(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	times, series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, times, series); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"id"`, `"entropy_flux"`, `"info_force"`, `"summary"`} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %s", want)
		}
	}
}
