package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultInput is the GWOSC strain file analyzed when no path is given.
	DefaultInput = "H-H1_GWOSC_16KHZ_R1-1126259447-32.hdf5"

	DefaultSegmentStart = 0.4   // s
	DefaultSegmentEnd   = 0.6   // s
	DefaultWindowSize   = 0.01  // s
	DefaultWindowStep   = 0.002 // s
	DefaultMass         = 1e30  // kg
	DefaultCarrier      = 1e8   // m/s
)

type Config struct {
	Input      string           `yaml:"input"`
	Segment    SegmentConfig    `yaml:"segment"`
	Window     WindowConfig     `yaml:"window"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	Source     SourceConfig     `yaml:"source"`
}

// SegmentConfig selects the analysis span in seconds relative to the
// start of the strain file.
type SegmentConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// WindowConfig sets the sliding window for per-window metrics.
type WindowConfig struct {
	Size float64 `yaml:"size"`
	Step float64 `yaml:"step"`
}

type PreprocessConfig struct {
	Detrend  bool    `yaml:"detrend"`
	Whiten   bool    `yaml:"whiten"`
	BandLow  float64 `yaml:"band_low"`
	BandHigh float64 `yaml:"band_high"`
}

// SourceConfig carries the physical model parameters.
type SourceConfig struct {
	Mass            float64 `yaml:"mass"`
	CarrierVelocity float64 `yaml:"carrier_velocity"`
}

func DefaultConfig() *Config {
	return &Config{
		Input: DefaultInput,
		Segment: SegmentConfig{
			Start: DefaultSegmentStart,
			End:   DefaultSegmentEnd,
		},
		Window: WindowConfig{
			Size: DefaultWindowSize,
			Step: DefaultWindowStep,
		},
		Source: SourceConfig{
			Mass:            DefaultMass,
			CarrierVelocity: DefaultCarrier,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the pipeline cannot run.
func (c *Config) Validate() error {
	if c.Segment.End <= c.Segment.Start {
		return fmt.Errorf("config: segment end %g must be after start %g", c.Segment.End, c.Segment.Start)
	}
	if c.Window.Size <= 0 {
		return fmt.Errorf("config: window size must be positive, got %g", c.Window.Size)
	}
	if c.Window.Step <= 0 {
		return fmt.Errorf("config: window step must be positive, got %g", c.Window.Step)
	}
	if c.Window.Size > c.Segment.End-c.Segment.Start {
		return fmt.Errorf("config: window size %g exceeds segment length %g", c.Window.Size, c.Segment.End-c.Segment.Start)
	}
	if c.Source.Mass <= 0 {
		return fmt.Errorf("config: source mass must be positive, got %g", c.Source.Mass)
	}
	if c.Source.CarrierVelocity <= 0 {
		return fmt.Errorf("config: carrier velocity must be positive, got %g", c.Source.CarrierVelocity)
	}
	if c.Preprocess.BandHigh != 0 && c.Preprocess.BandHigh <= c.Preprocess.BandLow {
		return fmt.Errorf("config: band high %g must be above band low %g", c.Preprocess.BandHigh, c.Preprocess.BandLow)
	}
	return nil
}

// Bandpass reports whether a band-pass filter is configured.
func (c *Config) Bandpass() bool {
	return c.Preprocess.BandHigh > c.Preprocess.BandLow && c.Preprocess.BandHigh > 0
}
