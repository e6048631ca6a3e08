package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gmifflen/planetsim/internal/orbit"
	"github.com/gmifflen/planetsim/internal/screen"
)

const (
	DefaultDt         = orbit.SecondsPerDay
	DefaultSteps      = 365
	DefaultScalePxAU  = 250.0
	DefaultWidth      = 800
	DefaultHeight     = 800
	DefaultIntegrator = "euler"
)

// BodyConfig describes one celestial body in startup units: positions in
// astronomical units, velocities in km/s, mass in kg, radius in display
// pixels, color as a hex string.
type BodyConfig struct {
	Name     string  `yaml:"name"`
	MassKg   float64 `yaml:"mass_kg"`
	RadiusPx float64 `yaml:"radius_px"`
	Color    string  `yaml:"color"`
	XAU      float64 `yaml:"x_au"`
	YAU      float64 `yaml:"y_au"`
	VXKmS    float64 `yaml:"vx_kms"`
	VYKmS    float64 `yaml:"vy_kms"`
	Star     bool    `yaml:"star"`
}

type Config struct {
	Integrator   string       `yaml:"integrator"`
	Dt           float64      `yaml:"dt"`
	Steps        int          `yaml:"steps"`
	FixedStar    bool         `yaml:"fixed_star"`
	Softening    float64      `yaml:"softening"`
	ScalePxPerAU float64      `yaml:"scale_px_per_au"`
	Width        int          `yaml:"width"`
	Height       int          `yaml:"height"`
	Bodies       []BodyConfig `yaml:"bodies"`
}

// DefaultConfig is one simulated year of the inner solar system at one
// day per step, viewed at 250 px per AU.
func DefaultConfig() *Config {
	return &Config{
		Integrator:   DefaultIntegrator,
		Dt:           DefaultDt,
		Steps:        DefaultSteps,
		FixedStar:    true,
		Softening:    orbit.SofteningLength,
		ScalePxPerAU: DefaultScalePxAU,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Bodies:       innerBodies(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Bodies) == 0 {
		cfg.Bodies = innerBodies()
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

// BuildSystem constructs and registers the configured bodies. Any invalid
// parameter surfaces here, before the first step.
func (c *Config) BuildSystem() (*orbit.System, error) {
	s := orbit.NewSystem()
	s.FixedStar = c.FixedStar
	if c.Softening > 0 {
		s.Softening = c.Softening
	}
	s.SetIntegrator(orbit.NewIntegrator(c.Integrator))

	for _, bc := range c.Bodies {
		col, err := ParseColor(bc.Color)
		if err != nil {
			return nil, err
		}
		b, err := orbit.NewBody(bc.Name, bc.MassKg, bc.RadiusPx, col,
			orbit.Vec2{X: bc.XAU * orbit.AU, Y: bc.YAU * orbit.AU},
			orbit.Vec2{X: bc.VXKmS * 1000.0, Y: bc.VYKmS * 1000.0})
		if err != nil {
			return nil, fmt.Errorf("config: body %q: %w", bc.Name, err)
		}
		b.Star = bc.Star
		if err := s.Add(b); err != nil {
			return nil, fmt.Errorf("config: body %q: %w", bc.Name, err)
		}
	}
	return s, nil
}

// BuildMapper returns the meters-to-pixels mapper centered on the surface.
func (c *Config) BuildMapper() (*screen.Mapper, error) {
	return screen.NewMapper(screen.PixelsPerAU(c.ScalePxPerAU),
		float64(c.Width)/2.0, float64(c.Height)/2.0)
}

// ParseColor turns a "#rrggbb" string into an RGBA value.
func ParseColor(s string) (color.RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
