package strain

import (
	"math"
	"testing"
)

func TestSeries_Dt(t *testing.T) {
	s := New(make([]float64, 16), 16384.0, 0)
	if got := s.Dt(); math.Abs(got-1.0/16384.0) > 1e-15 {
		t.Errorf("Dt() = %v, want %v", got, 1.0/16384.0)
	}
}

func TestSeries_Duration(t *testing.T) {
	s := New(make([]float64, 4096), 4096.0, 0)
	if got := s.Duration(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Duration() = %v, want 1.0", got)
	}
}

func TestSeries_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		valid   bool
	}{
		{"empty", []float64{}, true},
		{"normal", []float64{1e-21, -2e-21, 0}, true},
		{"with NaN", []float64{1e-21, math.NaN()}, false},
		{"with +Inf", []float64{1e-21, math.Inf(1)}, false},
		{"with -Inf", []float64{1e-21, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.samples, 1024, 0)
			if got := s.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestSeries_Segment(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = float64(i)
	}
	s := New(samples, 1000.0, 1126259446.0)

	seg, err := s.Segment(0.4, 0.6)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(seg.Samples) != 200 {
		t.Errorf("expected 200 samples, got %d", len(seg.Samples))
	}
	if seg.Samples[0] != 400 {
		t.Errorf("expected first sample 400, got %f", seg.Samples[0])
	}
	if math.Abs(seg.GPSStart-1126259446.4) > 1e-9 {
		t.Errorf("expected GPS start 1126259446.4, got %f", seg.GPSStart)
	}

	// Segment must be an independent copy.
	seg.Samples[0] = -1
	if s.Samples[400] == -1 {
		t.Error("segment shares storage with parent")
	}
}

func TestSeries_Segment_OutOfRange(t *testing.T) {
	s := New(make([]float64, 100), 100.0, 0)

	if _, err := s.Segment(0.5, 2.0); err == nil {
		t.Error("expected error for segment beyond duration")
	}
	if _, err := s.Segment(-0.1, 0.5); err == nil {
		t.Error("expected error for negative start")
	}
	if _, err := s.Segment(0.5, 0.5); err == nil {
		t.Error("expected error for empty segment")
	}
}

func TestSeries_Windows(t *testing.T) {
	samples := make([]float64, 100)
	s := New(samples, 100.0, 0)

	wins := s.Windows(10, 2)
	if len(wins) != 45 {
		t.Errorf("expected 45 windows, got %d", len(wins))
	}
	if wins[0].Start != 0 || wins[1].Start != 2 {
		t.Errorf("unexpected window starts: %d, %d", wins[0].Start, wins[1].Start)
	}
	if math.Abs(wins[0].Center-0.05) > 1e-12 {
		t.Errorf("expected center 0.05, got %f", wins[0].Center)
	}
	// The stride stops before a window would start at exactly len-size.
	last := wins[len(wins)-1]
	if last.Start+10 >= len(samples) {
		t.Error("last window runs to the end of the series")
	}
}

func TestSeries_Windows_TrailingBound(t *testing.T) {
	s := New(make([]float64, 20), 20.0, 0)

	wins := s.Windows(10, 5)
	if len(wins) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(wins))
	}
	if wins[1].Start != 5 {
		t.Errorf("expected last window at offset 5, got %d", wins[1].Start)
	}
}

func TestSeries_Windows_Degenerate(t *testing.T) {
	s := New(make([]float64, 8), 8.0, 0)
	if wins := s.Windows(16, 2); wins != nil {
		t.Error("expected nil for window larger than series")
	}
	if wins := s.Windows(0, 2); wins != nil {
		t.Error("expected nil for zero window size")
	}
}
