package config

import (
	"sort"

	"github.com/san-kum/ratgrav/internal/exact"
	"github.com/san-kum/ratgrav/internal/gravity"
)

// Presets are ready-made scenarios keyed by name. Use GetPreset, which
// returns a copy.
//
// Tick counts stay small: exact positions gain digits several-fold per
// tick, so off-axis scenarios become expensive quickly. sun_earth_moon
// takes minutes at three ticks.
var Presets = map[string]*Config{
	"earth_moon": DefaultConfig(),
	"sun_earth_moon": {
		Name: "sun_earth_moon", G: gravity.DefaultG(), Ticks: 2, Policy: "sequential", Workers: DefaultWorkers,
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 1.989e30, Position: [3]float64{0, 0, 0}},
			{Name: "earth", Mass: 5.97e24, Position: [3]float64{1.496e11, 0, 0}},
			{Name: "moon", Mass: 7.342e22, Position: [3]float64{1.496e11 + 3.844e8, 0, 0}},
		},
	},
	"binary": {
		Name: "binary", G: exact.FromInt(1), Ticks: 4, Policy: "snapshot", Workers: 2,
		Bodies: []BodyConfig{
			{Name: "left", Mass: 1, Position: [3]float64{-1, 0, 0}},
			{Name: "right", Mass: 1, Position: [3]float64{1, 0.5, 0}},
		},
	},
	"coincident": {
		Name: "coincident", G: gravity.DefaultG(), Ticks: 1, Policy: "sequential", Workers: DefaultWorkers,
		Bodies: []BodyConfig{
			{Name: "first", Mass: 1e10, Position: [3]float64{1, 2, 3}},
			{Name: "second", Mass: 1e10, Position: [3]float64{1, 2, 3}},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
