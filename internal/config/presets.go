package config

import "sort"

// innerBodies is the classic inner solar system: real masses, AU-derived
// positions and AU/day-derived speeds, display radii sized for a 250
// px/AU view.
func innerBodies() []BodyConfig {
	return []BodyConfig{
		{Name: "Sun", MassKg: 1.98892e30, RadiusPx: 30, Color: "#ffff00", Star: true},
		{Name: "Earth", MassKg: 5.9742e24, RadiusPx: 16, Color: "#6495ed", XAU: -1.0, VYKmS: 29.783},
		{Name: "Mars", MassKg: 6.39e23, RadiusPx: 12, Color: "#bc2732", XAU: -1.524, VYKmS: 24.077},
		{Name: "Mercury", MassKg: 3.30e23, RadiusPx: 8, Color: "#504e51", XAU: 0.387, VYKmS: -47.4},
		{Name: "Venus", MassKg: 4.8685e24, RadiusPx: 14, Color: "#ffffff", XAU: 0.723, VYKmS: -35.02},
	}
}

var Presets = map[string]*Config{
	"inner": DefaultConfig(),
	"earth": {
		Integrator: "euler", Dt: DefaultDt, Steps: 365, FixedStar: true,
		ScalePxPerAU: DefaultScalePxAU, Width: DefaultWidth, Height: DefaultHeight,
		Bodies: []BodyConfig{
			{Name: "Sun", MassKg: 1.989e30, RadiusPx: 30, Color: "#ffff00", Star: true},
			{Name: "Earth", MassKg: 5.972e24, RadiusPx: 16, Color: "#6495ed", XAU: 1.0, VYKmS: 29.78},
		},
	},
	"binary": {
		Integrator: "leapfrog", Dt: DefaultDt, Steps: 730, FixedStar: false,
		ScalePxPerAU: DefaultScalePxAU, Width: DefaultWidth, Height: DefaultHeight,
		Bodies: []BodyConfig{
			{Name: "Alpha", MassKg: 1.0e30, RadiusPx: 20, Color: "#ffdd88", Star: true, XAU: -0.5, VYKmS: -14.9},
			{Name: "Beta", MassKg: 1.0e30, RadiusPx: 20, Color: "#88ddff", XAU: 0.5, VYKmS: 14.9},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist. Callers are free to mutate the result; the preset table is not
// affected.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	clone.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
