package orbit

// Integrator advances every non-fixed body of a system by one fixed time
// step. Implementations must compute all accelerations from the unmutated
// position snapshot before moving any body.
type Integrator interface {
	Name() string
	Advance(s *System, dt float64)
}

// SemiImplicitEuler updates velocity from the snapshot forces first, then
// position from the new velocity. The velocity-before-position order is
// what keeps the orbital energy bounded over thousands of steps.
type SemiImplicitEuler struct{}

func (SemiImplicitEuler) Name() string { return "euler" }

func (SemiImplicitEuler) Advance(s *System, dt float64) {
	acc := s.accelerations()
	for i, b := range s.bodies {
		if b.Star && s.FixedStar {
			continue
		}
		b.Vel = b.Vel.Add(acc[i].Scale(dt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}
}

// Leapfrog is the kick-drift-kick scheme: half a velocity kick, a full
// position drift, then the second half kick from the post-drift forces.
// Second order and symplectic, at the cost of two force passes per step.
type Leapfrog struct{}

func (Leapfrog) Name() string { return "leapfrog" }

func (Leapfrog) Advance(s *System, dt float64) {
	half := 0.5 * dt

	acc := s.accelerations()
	for i, b := range s.bodies {
		if b.Star && s.FixedStar {
			continue
		}
		b.Vel = b.Vel.Add(acc[i].Scale(half))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}

	acc = s.accelerations()
	for i, b := range s.bodies {
		if b.Star && s.FixedStar {
			continue
		}
		b.Vel = b.Vel.Add(acc[i].Scale(half))
	}
}

// NewIntegrator maps a config name to a scheme, defaulting to
// semi-implicit Euler for unknown names.
func NewIntegrator(name string) Integrator {
	switch name {
	case "leapfrog":
		return Leapfrog{}
	default:
		return SemiImplicitEuler{}
	}
}
