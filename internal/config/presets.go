package config

var Presets = map[string]*Config{
	// The 200 ms around the GW150914 merger in the 32 s H1 file.
	"merger": {
		Input:   DefaultInput,
		Segment: SegmentConfig{Start: 0.4, End: 0.6},
		Window:  WindowConfig{Size: 0.01, Step: 0.002},
		Source:  SourceConfig{Mass: DefaultMass, CarrierVelocity: DefaultCarrier},
	},
	// Coarse sweep over the whole acquisition.
	"full": {
		Input:   DefaultInput,
		Segment: SegmentConfig{Start: 0.0, End: 32.0},
		Window:  WindowConfig{Size: 0.25, Step: 0.05},
		Source:  SourceConfig{Mass: DefaultMass, CarrierVelocity: DefaultCarrier},
	},
	// Detector-band cleanup before extraction.
	"banded": {
		Input:   DefaultInput,
		Segment: SegmentConfig{Start: 0.4, End: 0.6},
		Window:  WindowConfig{Size: 0.01, Step: 0.002},
		Preprocess: PreprocessConfig{
			Detrend:  true,
			BandLow:  35,
			BandHigh: 350,
		},
		Source: SourceConfig{Mass: DefaultMass, CarrierVelocity: DefaultCarrier},
	},
	// Whitened variant of the merger segment.
	"whitened": {
		Input:   DefaultInput,
		Segment: SegmentConfig{Start: 0.4, End: 0.6},
		Window:  WindowConfig{Size: 0.01, Step: 0.002},
		Preprocess: PreprocessConfig{
			Detrend: true,
			Whiten:  true,
		},
		Source: SourceConfig{Mass: DefaultMass, CarrierVelocity: DefaultCarrier},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
