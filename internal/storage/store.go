package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/gwflux/internal/config"
	"github.com/san-kum/gwflux/internal/pipeline"
)

// floatPrec is the FormatFloat precision used for all persisted series
// values; fixed so re-runs of the same input produce identical files.
const floatPrec = 9

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir returns the directory holding a run's files.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID              string             `json:"id"`
	Input           string             `json:"input"`
	Timestamp       time.Time          `json:"timestamp"`
	GPSStart        float64            `json:"gps_start"`
	Rate            float64            `json:"rate"`
	SegmentStart    float64            `json:"segment_start"`
	SegmentEnd      float64            `json:"segment_end"`
	WindowSize      float64            `json:"window_size"`
	WindowStep      float64            `json:"window_step"`
	Mass            float64            `json:"mass"`
	CarrierVelocity float64            `json:"carrier_velocity"`
	Summary         map[string]float64 `json:"summary"`
}

// Save persists a completed run: metadata.json plus series.csv with one
// row per window. It returns the run id. Run directories are written
// once and never reused; saves landing on the same second get a counter
// suffix.
func (s *Store) Save(cfg *config.Config, result *pipeline.Result) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(cfg.Input), filepath.Ext(cfg.Input))
	base := fmt.Sprintf("%s_%d", stem, time.Now().Unix())

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	runID := base
	runDir := filepath.Join(s.baseDir, runID)
	for n := 1; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta := RunMetadata{
		ID:              runID,
		Input:           cfg.Input,
		Timestamp:       time.Now(),
		GPSStart:        result.Segment.GPSStart,
		Rate:            result.Segment.Rate,
		SegmentStart:    cfg.Segment.Start,
		SegmentEnd:      cfg.Segment.End,
		WindowSize:      cfg.Window.Size,
		WindowStep:      cfg.Window.Step,
		Mass:            cfg.Source.Mass,
		CarrierVelocity: cfg.Source.CarrierVelocity,
		Summary:         result.Summary,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	names := seriesNames(result)
	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(result.Series[name][i], 'e', floatPrec, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func seriesNames(result *pipeline.Result) []string {
	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads series.csv back into window-center times and named
// metric columns.
func (s *Store) LoadSeries(runID string) (times []float64, series map[string][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 1 {
		return []float64{}, map[string][]float64{}, nil
	}

	names := records[0][1:]
	times = make([]float64, 0, len(records)-1)
	series = make(map[string][]float64, len(names))
	for _, name := range names {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(names)+1 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		for j, name := range names {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				val = 0
			}
			series[name] = append(series[name], val)
		}
	}

	return times, series, nil
}
