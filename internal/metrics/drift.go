// Package metrics provides conservation observers for simulation runs.
// Each metric implements [sim.Metric], sampling the system once per step
// and reducing to a single reported value.
package metrics

import (
	"math"

	"github.com/gmifflen/planetsim/internal/orbit"
)

// EnergyDrift reports the worst relative deviation of total mechanical
// energy from its first observed value. For a well-behaved symplectic run
// this stays small and bounded; growth signals an integration problem.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s *orbit.System, t float64) {
	energy := s.Energy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// AngularMomentumDrift is EnergyDrift for total angular momentum about
// the origin.
type AngularMomentumDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{}
}

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(s *orbit.System, t float64) {
	L := s.AngularMomentum()
	if a.samples == 0 {
		a.initial = L
	}
	a.samples++

	if a.initial != 0 {
		drift := math.Abs(L-a.initial) / math.Abs(a.initial)
		a.maxDrift = math.Max(a.maxDrift, drift)
	}
}

func (a *AngularMomentumDrift) Value() float64 {
	return a.maxDrift
}

func (a *AngularMomentumDrift) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.samples = 0
}

// Eccentricity estimates a body's orbital eccentricity from the observed
// distance extrema: (rmax - rmin) / (rmax + rmin). Meaningful only after
// at least a full orbit has been sampled.
type Eccentricity struct {
	body     string
	min, max float64
	samples  int
}

func NewEccentricity(body string) *Eccentricity {
	return &Eccentricity{body: body, min: math.Inf(1), max: math.Inf(-1)}
}

func (e *Eccentricity) Name() string { return "eccentricity_" + e.body }

func (e *Eccentricity) Observe(s *orbit.System, t float64) {
	for _, b := range s.Bodies() {
		if b.Name != e.body || b.Star {
			continue
		}
		e.min = math.Min(e.min, b.DistToStar)
		e.max = math.Max(e.max, b.DistToStar)
		e.samples++
	}
}

func (e *Eccentricity) Value() float64 {
	if e.samples == 0 || e.max+e.min == 0 {
		return 0
	}
	return (e.max - e.min) / (e.max + e.min)
}

func (e *Eccentricity) Reset() {
	e.min = math.Inf(1)
	e.max = math.Inf(-1)
	e.samples = 0
}
