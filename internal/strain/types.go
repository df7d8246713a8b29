package strain

import (
	"fmt"
	"math"
)

// Series is a contiguous strain acquisition: amplitude samples at a fixed
// rate starting at a GPS epoch.
type Series struct {
	Samples  []float64
	Rate     float64 // Hz
	GPSStart float64 // seconds
}

func New(samples []float64, rate, gpsStart float64) *Series {
	return &Series{Samples: samples, Rate: rate, GPSStart: gpsStart}
}

// Dt returns the sample interval in seconds.
func (s *Series) Dt() float64 {
	if s.Rate == 0 {
		return 0
	}
	return 1.0 / s.Rate
}

// Duration returns the total span of the series in seconds.
func (s *Series) Duration() float64 {
	return float64(len(s.Samples)) * s.Dt()
}

// Time returns the time of sample i relative to the series start.
func (s *Series) Time(i int) float64 {
	return float64(i) * s.Dt()
}

func (s *Series) Clone() *Series {
	c := make([]float64, len(s.Samples))
	copy(c, s.Samples)
	return &Series{Samples: c, Rate: s.Rate, GPSStart: s.GPSStart}
}

// Segment returns the sub-series covering [start, end) seconds relative to
// the series start. The returned series shares no storage with the parent.
func (s *Series) Segment(start, end float64) (*Series, error) {
	if start < 0 || end <= start {
		return nil, fmt.Errorf("strain: invalid segment [%g, %g)", start, end)
	}
	lo := int(start * s.Rate)
	hi := int(end * s.Rate)
	if hi > len(s.Samples) {
		return nil, fmt.Errorf("strain: segment end %gs beyond series duration %.4gs", end, s.Duration())
	}
	c := make([]float64, hi-lo)
	copy(c, s.Samples[lo:hi])
	return &Series{
		Samples:  c,
		Rate:     s.Rate,
		GPSStart: s.GPSStart + float64(lo)*s.Dt(),
	}, nil
}

// IsValid reports whether every sample is finite.
func (s *Series) IsValid() bool {
	for _, v := range s.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Window is one position of a sliding window over a series.
type Window struct {
	Index   int       // window ordinal
	Start   int       // first sample index
	Center  float64   // time of the center sample, relative to series start
	Samples []float64 // view into the parent series, not a copy
}

// Windows slides a window of size samples across the series advancing by
// step samples, matching the extractor's per-window granularity. Strides
// stop before the window that would end exactly at the series end, so
// partial windows are never produced.
func (s *Series) Windows(size, step int) []Window {
	if size <= 0 || step <= 0 || size > len(s.Samples) {
		return nil
	}
	out := make([]Window, 0, (len(s.Samples)-size)/step+1)
	idx := 0
	for i := 0; i+size < len(s.Samples); i += step {
		out = append(out, Window{
			Index:   idx,
			Start:   i,
			Center:  s.Time(i + size/2),
			Samples: s.Samples[i : i+size],
		})
		idx++
	}
	return out
}
