package config

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/nbody"
)

var presets = map[string]func() *Config{
	"solar": func() *Config {
		return withBodies("solar", nbody.Sun(), nbody.Earth(), nbody.Mars(), nbody.Comet())
	},
	"planets": func() *Config {
		return withBodies("planets", nbody.Sun(), nbody.Earth(), nbody.Mars())
	},
	"earth": func() *Config {
		cfg := withBodies("earth", nbody.Sun(), nbody.Earth())
		cfg.DurationDays = 365
		return cfg
	},
	"infall": func() *Config {
		earth := nbody.Earth()
		earth.Vel = mgl64.Vec3{}
		cfg := withBodies("infall", nbody.Sun(), earth)
		cfg.DurationDays = 60
		cfg.ValidateState = true
		return cfg
	},
	"comet": func() *Config {
		cfg := withBodies("comet", nbody.Sun(), nbody.Comet())
		cfg.DurationDays = 3 * 365
		return cfg
	},
}

func withBodies(name string, star nbody.Body, orbiters ...nbody.Body) *Config {
	cfg := &Config{
		Preset:       name,
		G:            nbody.G,
		DtDays:       DefaultDtDays,
		DurationDays: DefaultDurationDays,
		Star:         fromBody(star),
		Orbiters:     make([]BodyConfig, len(orbiters)),
	}
	for i, o := range orbiters {
		cfg.Orbiters[i] = fromBody(o)
	}
	return cfg
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
