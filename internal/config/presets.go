package config

// Presets are ready-made run configurations.
var Presets = map[string]*Config{
	"relax": {
		N: 500, Init: "lattice", Dt: 0.001, Steps: 5000,
		Binning: 10, Cutoff: 0.2, Gamma: 1.0, Mode: "cells", Workers: 1,
	},
	"hot": {
		N: 500, Init: "random", Speed: 1.0, Dt: 0.0005, Steps: 10000,
		Binning: 10, Cutoff: 0.2, Gamma: 0.0, Mode: "cells", Workers: 1,
	},
	"cool": {
		N: 1000, Init: "random", Speed: 0.5, Dt: 0.001, Steps: 20000,
		Binning: 12, Cutoff: 0.15, Gamma: 0.5, Mode: "cells", Workers: 4,
	},
	"small": {
		N: 50, Init: "random", Speed: 0.2, Dt: 0.002, Steps: 2000,
		Binning: 1, Cutoff: 0.5, Gamma: 0.2, Mode: "brute", Workers: 1,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
