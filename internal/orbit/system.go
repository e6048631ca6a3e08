package orbit

import (
	"math"

	"github.com/gonum/floats"
)

// coincidenceTol is the minimum allowed separation between two bodies at
// registration time, in meters. Closer than this and the force law has
// nothing sensible to say.
const coincidenceTol = 1.0

// System owns the body set and advances it through time. A System is
// stepped from a single goroutine and the body set is fixed once stepping
// begins.
type System struct {
	bodies []*Body
	star   *Body

	// G, Softening and FixedStar are policy knobs, set before stepping.
	G         float64
	Softening float64

	// FixedStar pins the star to its initial state. Its gravity still acts
	// on every planet; forces on the star itself are discarded.
	FixedStar bool

	integ   Integrator
	elapsed float64
	steps   int
}

// NewSystem returns an empty system with the real gravitational constant,
// the default softening length, a fixed star and semi-implicit Euler
// integration.
func NewSystem() *System {
	return &System{
		G:         G,
		Softening: SofteningLength,
		FixedStar: true,
		integ:     SemiImplicitEuler{},
	}
}

// SetIntegrator replaces the integration scheme. Call before stepping.
func (s *System) SetIntegrator(i Integrator) {
	s.integ = i
}

// Integrator returns the active integration scheme.
func (s *System) Integrator() Integrator {
	return s.integ
}

// Add registers a body. Registration is setup-only: once Step has been
// called the body set is sealed. A body placed on top of an existing one
// is rejected rather than left to divide by zero later.
func (s *System) Add(b *Body) error {
	if s.steps > 0 {
		return ErrSystemStarted
	}
	if b.Mass <= 0 {
		return ErrNonPositiveMass
	}
	for _, other := range s.bodies {
		if floats.EqualWithinAbs(other.Pos.Sub(b.Pos).Norm(), 0, coincidenceTol) {
			return ErrCoincidentBodies
		}
	}
	if b.Star {
		if s.star != nil {
			return ErrDuplicateStar
		}
		s.star = b
	}
	s.bodies = append(s.bodies, b)
	s.refreshDistances()
	return nil
}

// Bodies returns the live body slice. Callers treat it as read-only.
func (s *System) Bodies() []*Body {
	return s.bodies
}

// Star returns the star body, or nil if none was registered.
func (s *System) Star() *Body {
	return s.star
}

// Elapsed returns the simulated time in seconds.
func (s *System) Elapsed() float64 {
	return s.elapsed
}

// Steps returns how many steps have been taken.
func (s *System) Steps() int {
	return s.steps
}

// Step advances every body by dt seconds. All forces are computed from the
// pre-step position snapshot before any body moves, then velocity is
// integrated before position (semi-implicit Euler, or the configured
// scheme). A non-finite position or velocity afterwards is fatal.
func (s *System) Step(dt float64) error {
	if dt <= 0 {
		return ErrNonPositiveStep
	}
	s.integ.Advance(s, dt)
	for _, b := range s.bodies {
		if !b.Pos.IsFinite() || !b.Vel.IsFinite() {
			return &StepError{Step: s.steps, Time: s.elapsed, Body: b.Name, Wrapped: ErrNumericDivergence}
		}
	}
	s.refreshDistances()
	s.elapsed += dt
	s.steps++
	return nil
}

// refreshDistances updates every planet's cached star distance. Called on
// registration and after every step so the cache is never stale, frame 0
// included.
func (s *System) refreshDistances() {
	if s.star == nil {
		return
	}
	for _, b := range s.bodies {
		if b != s.star {
			b.DistToStar = s.Distance(b, s.star)
		}
	}
}

// Distance returns the Euclidean separation of two bodies' current positions.
func (s *System) Distance(a, b *Body) float64 {
	return a.Pos.Sub(b.Pos).Norm()
}

// forceOn returns the gravitational force exerted on a by b, pointing from
// a toward b. The softening length is folded into the separation so the
// magnitude is G*mA*mB/(r^2+eps^2).
func (s *System) forceOn(a, b *Body) Vec2 {
	d := b.Pos.Sub(a.Pos)
	r2 := d.Dot(d) + s.Softening*s.Softening
	inv := 1.0 / math.Sqrt(r2)
	f := s.G * a.Mass * b.Mass * inv * inv
	return d.Scale(f * inv)
}

// accelerations performs the full pairwise force pass over the current
// positions and returns per-body accelerations. Newton's third law lets
// each pair be visited once with the symmetric update applied to both.
func (s *System) accelerations() []Vec2 {
	n := len(s.bodies)
	acc := make([]Vec2, n)

	for i := 0; i < n; i++ {
		bi := s.bodies[i]
		for j := i + 1; j < n; j++ {
			bj := s.bodies[j]

			f := s.forceOn(bi, bj)
			acc[i] = acc[i].Add(f.Scale(1.0 / bi.Mass))
			acc[j] = acc[j].Sub(f.Scale(1.0 / bj.Mass))
		}
	}

	return acc
}

// Energy returns total mechanical energy: kinetic plus the softened
// pairwise gravitational potential.
func (s *System) Energy() float64 {
	ke := 0.0
	pe := 0.0
	eps2 := s.Softening * s.Softening

	for i, bi := range s.bodies {
		ke += 0.5 * bi.Mass * bi.Vel.Dot(bi.Vel)

		for j := i + 1; j < len(s.bodies); j++ {
			bj := s.bodies[j]
			d := bj.Pos.Sub(bi.Pos)
			r := math.Sqrt(d.Dot(d) + eps2)
			pe -= s.G * bi.Mass * bj.Mass / r
		}
	}

	return ke + pe
}

// AngularMomentum returns the total angular momentum about the origin.
func (s *System) AngularMomentum() float64 {
	L := 0.0
	for _, b := range s.bodies {
		L += b.Mass * b.Pos.Cross(b.Vel)
	}
	return L
}

// Momentum returns the total linear momentum.
func (s *System) Momentum() Vec2 {
	var p Vec2
	for _, b := range s.bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}
