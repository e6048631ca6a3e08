// Package screen converts simulation-space positions (meters) into
// surface-space pixel coordinates. The mapping is affine and static: a
// scale in pixels per meter chosen once at startup plus an origin at the
// surface center.
package screen

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gmifflen/planetsim/internal/orbit"
)

// ErrNonPositiveScale indicates a mapper configured with scale <= 0.
var ErrNonPositiveScale = errors.New("screen: scale must be positive")

// PixelsPerAU converts a pixels-per-astronomical-unit zoom into the
// pixels-per-meter scale a Mapper takes. The classic window setting is
// PixelsPerAU(250).
func PixelsPerAU(px float64) float64 {
	return px / orbit.AU
}

// Mapper is the configured meters-to-pixels transform.
type Mapper struct {
	scale  float64 // px per m
	ox, oy float64 // surface center, px
}

// NewMapper validates the scale and returns a mapper with the origin at
// (ox, oy).
func NewMapper(scale, ox, oy float64) (*Mapper, error) {
	if scale <= 0 {
		return nil, ErrNonPositiveScale
	}
	return &Mapper{scale: scale, ox: ox, oy: oy}, nil
}

// Scale returns the configured scale in pixels per meter.
func (m *Mapper) Scale() float64 {
	return m.scale
}

// Origin returns the configured surface origin in pixels.
func (m *Mapper) Origin() (float64, float64) {
	return m.ox, m.oy
}

// ToScreen maps a simulation-space position to surface pixels. Pure: no
// state beyond the configured scale and origin.
func (m *Mapper) ToScreen(p orbit.Vec2) (sx, sy float64) {
	return m.ox + p.X*m.scale, m.oy + p.Y*m.scale
}

// Sprite is the per-body draw instruction handed to the host renderer.
type Sprite struct {
	X, Y    float64 // px
	Radius  float64 // px
	Color   color.RGBA
	Label   string
	Caption string // distance readout, empty for the star
}

// Project builds the draw instruction for a body from its current state.
func (m *Mapper) Project(b *orbit.Body) Sprite {
	sx, sy := m.ToScreen(b.Pos)
	sp := Sprite{
		X:      sx,
		Y:      sy,
		Radius: b.Radius,
		Color:  b.Color,
		Label:  b.Name,
	}
	if !b.Star {
		sp.Caption = fmt.Sprintf("%.1fkm", b.DistToStar/1000.0)
	}
	return sp
}
