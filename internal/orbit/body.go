package orbit

import "image/color"

// Physical and display constants. Distances are SI meters.
const (
	// AU is one astronomical unit in meters.
	AU = 149.6e6 * 1000.0

	// G is the gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67428e-11

	// SofteningLength damps the force at close separations to keep the
	// integration stable; it is added in quadrature to every pair distance.
	SofteningLength = 1.0e9

	// SecondsPerDay is the default simulation time step.
	SecondsPerDay = 3600.0 * 24.0
)

// Body is a celestial object: a point mass plus display attributes.
// Radius is the on-screen radius in pixels and is not physically coupled
// to the mass.
type Body struct {
	Name   string
	Mass   float64 // kg
	Radius float64 // px
	Color  color.RGBA
	Pos    Vec2 // m
	Vel    Vec2 // m/s
	Star   bool

	// DistToStar caches the separation from the star, refreshed every step.
	DistToStar float64
}

// NewBody validates the physical parameters and returns a registrable body.
func NewBody(name string, mass, radius float64, col color.RGBA, pos, vel Vec2) (*Body, error) {
	if mass <= 0 {
		return nil, ErrNonPositiveMass
	}
	if radius <= 0 {
		return nil, ErrNonPositiveRadius
	}
	return &Body{
		Name:   name,
		Mass:   mass,
		Radius: radius,
		Color:  col,
		Pos:    pos,
		Vel:    vel,
	}, nil
}

// NewStar is NewBody with the star flag set.
func NewStar(name string, mass, radius float64, col color.RGBA) (*Body, error) {
	b, err := NewBody(name, mass, radius, col, Vec2{}, Vec2{})
	if err != nil {
		return nil, err
	}
	b.Star = true
	return b, nil
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 {
	return b.Vel.Norm()
}
