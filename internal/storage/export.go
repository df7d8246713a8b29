package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID       string               `json:"id"`
	Input    string               `json:"input"`
	GPSStart float64              `json:"gps_start"`
	Rate     float64              `json:"rate"`
	Windows  int                  `json:"windows"`
	Times    []float64            `json:"times"`
	Series   map[string][]float64 `json:"series"`
	Summary  map[string]float64   `json:"summary"`
}

// ExportJSON writes a stored run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, times []float64, series map[string][]float64) error {
	data := ExportData{
		ID:       meta.ID,
		Input:    meta.Input,
		GPSStart: meta.GPSStart,
		Rate:     meta.Rate,
		Windows:  len(times),
		Times:    times,
		Series:   series,
		Summary:  meta.Summary,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
