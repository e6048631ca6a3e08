package orbit

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func newSunEarth(t *testing.T) (*System, *Body, *Body) {
	t.Helper()
	s := NewSystem()

	sun, err := NewStar("sun", 1.989e30, 30, color.RGBA{R: 0xff, G: 0xff, A: 0xff})
	if err != nil {
		t.Fatal(err)
	}
	earth, err := NewBody("earth", 5.972e24, 16, testColor, Vec2{AU, 0}, Vec2{Y: 29780})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Add(sun); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(earth); err != nil {
		t.Fatal(err)
	}
	return s, sun, earth
}

func TestAddRejectsCoincidentBodies(t *testing.T) {
	s := NewSystem()

	a, _ := NewBody("a", 1e24, 10, testColor, Vec2{AU, 0}, Vec2{})
	b, _ := NewBody("b", 2e24, 10, testColor, Vec2{AU, 0}, Vec2{})

	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(b); !errors.Is(err, ErrCoincidentBodies) {
		t.Errorf("expected ErrCoincidentBodies, got %v", err)
	}
}

func TestAddRejectsSecondStar(t *testing.T) {
	s := NewSystem()

	s1, _ := NewStar("sun", 1.989e30, 30, testColor)
	s2, _ := NewStar("rival", 1.0e30, 30, testColor)
	s2.Pos = Vec2{AU, 0}

	if err := s.Add(s1); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(s2); !errors.Is(err, ErrDuplicateStar) {
		t.Errorf("expected ErrDuplicateStar, got %v", err)
	}
}

func TestAddSealedAfterStepping(t *testing.T) {
	s, _, _ := newSunEarth(t)
	if err := s.Step(SecondsPerDay); err != nil {
		t.Fatal(err)
	}

	late, _ := NewBody("mars", 6.39e23, 12, testColor, Vec2{-1.524 * AU, 0}, Vec2{Y: 24077})
	if err := s.Add(late); !errors.Is(err, ErrSystemStarted) {
		t.Errorf("expected ErrSystemStarted, got %v", err)
	}
}

func TestStepRejectsNonPositiveDt(t *testing.T) {
	s, _, _ := newSunEarth(t)
	for _, dt := range []float64{0, -1} {
		if err := s.Step(dt); !errors.Is(err, ErrNonPositiveStep) {
			t.Errorf("dt %g: expected ErrNonPositiveStep, got %v", dt, err)
		}
	}
}

func TestZeroSelfForce(t *testing.T) {
	s := NewSystem()
	lone, _ := NewBody("lone", 1e30, 10, testColor, Vec2{}, Vec2{X: 10})
	if err := s.Add(lone); err != nil {
		t.Fatal(err)
	}

	acc := s.accelerations()
	if acc[0] != (Vec2{}) {
		t.Fatalf("expected zero self-force, got %v", acc[0])
	}

	if err := s.Step(SecondsPerDay); err != nil {
		t.Fatal(err)
	}
	if lone.Vel != (Vec2{X: 10}) {
		t.Errorf("velocity changed with no other bodies: %v", lone.Vel)
	}
}

func TestForceSymmetry(t *testing.T) {
	s, sun, earth := newSunEarth(t)

	fOnEarth := s.forceOn(earth, sun)
	fOnSun := s.forceOn(sun, earth)

	if !floats.EqualWithinAbsOrRel(fOnEarth.Norm(), fOnSun.Norm(), 1e-6, 1e-12) {
		t.Errorf("force magnitudes differ: %g vs %g", fOnEarth.Norm(), fOnSun.Norm())
	}
	sum := fOnEarth.Add(fOnSun)
	if sum.Norm() > 1e-12*fOnEarth.Norm() {
		t.Errorf("forces not opposite: residual %v", sum)
	}

	// Force on earth points from earth toward the sun.
	if fOnEarth.X >= 0 {
		t.Errorf("expected force toward the origin, got %v", fOnEarth)
	}
}

func TestDistanceToStarSetAtRegistration(t *testing.T) {
	_, _, earth := newSunEarth(t)
	if earth.DistToStar != AU {
		t.Errorf("distance not initialized on add: got %g, want %g", earth.DistToStar, AU)
	}

	// A star registered after the planets backfills their caches.
	s := NewSystem()
	planet, _ := NewBody("earth", 5.972e24, 16, testColor, Vec2{AU, 0}, Vec2{Y: 29780})
	if err := s.Add(planet); err != nil {
		t.Fatal(err)
	}
	if planet.DistToStar != 0 {
		t.Errorf("no star yet, expected zero distance, got %g", planet.DistToStar)
	}

	sun, _ := NewStar("sun", 1.989e30, 30, testColor)
	if err := s.Add(sun); err != nil {
		t.Fatal(err)
	}
	if planet.DistToStar != AU {
		t.Errorf("distance not backfilled: got %g, want %g", planet.DistToStar, AU)
	}
}

func TestDistanceToStarRefreshed(t *testing.T) {
	s, sun, earth := newSunEarth(t)

	if err := s.Step(SecondsPerDay); err != nil {
		t.Fatal(err)
	}
	want := s.Distance(earth, sun)
	if earth.DistToStar != want {
		t.Errorf("cached distance %g, want %g", earth.DistToStar, want)
	}
	if earth.DistToStar < 0.9*AU || earth.DistToStar > 1.1*AU {
		t.Errorf("implausible distance after one day: %g", earth.DistToStar)
	}
}

// A near-circular Earth orbit should close after 365 daily steps: the
// distance to the sun stays inside narrow bounds throughout and ends
// within a few percent of where it started.
func TestEarthYearScenario(t *testing.T) {
	s, _, earth := newSunEarth(t)

	r0 := earth.Pos.Norm()
	minR, maxR := math.Inf(1), math.Inf(-1)

	for i := 0; i < 365; i++ {
		if err := s.Step(SecondsPerDay); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		r := earth.DistToStar
		minR = math.Min(minR, r)
		maxR = math.Max(maxR, r)
	}

	if minR < 1.45e11 {
		t.Errorf("orbit dipped to %g m", minR)
	}
	if maxR > 1.54e11 {
		t.Errorf("orbit swelled to %g m", maxR)
	}
	if rel := math.Abs(earth.DistToStar-r0) / r0; rel > 0.03 {
		t.Errorf("orbit failed to close: final distance off by %.2f%%", rel*100)
	}
	if want := 365 * SecondsPerDay; s.Elapsed() != want {
		t.Errorf("elapsed %g, want %g", s.Elapsed(), want)
	}
}

// With a fixed star and one planet the mechanical energy and angular
// momentum of the softened two-body problem must hold to a small relative
// tolerance over a full orbit, given a small enough step.
func TestTwoBodyConservation(t *testing.T) {
	for _, integ := range []Integrator{SemiImplicitEuler{}, Leapfrog{}} {
		t.Run(integ.Name(), func(t *testing.T) {
			s, _, _ := newSunEarth(t)
			s.SetIntegrator(integ)

			e0 := s.Energy()
			l0 := s.AngularMomentum()
			if e0 >= 0 {
				t.Fatalf("bound orbit should have negative energy, got %g", e0)
			}

			dt := 600.0
			steps := int(365.25 * SecondsPerDay / dt)
			maxEDrift, maxLDrift := 0.0, 0.0

			for i := 0; i < steps; i++ {
				if err := s.Step(dt); err != nil {
					t.Fatalf("step %d: %v", i, err)
				}
				eDrift := math.Abs(s.Energy()-e0) / math.Abs(e0)
				lDrift := math.Abs(s.AngularMomentum()-l0) / math.Abs(l0)
				maxEDrift = math.Max(maxEDrift, eDrift)
				maxLDrift = math.Max(maxLDrift, lDrift)
			}

			if maxEDrift > 1e-3 {
				t.Errorf("energy drift %e exceeds 1e-3", maxEDrift)
			}
			if maxLDrift > 1e-3 {
				t.Errorf("angular momentum drift %e exceeds 1e-3", maxLDrift)
			}
		})
	}
}

func TestMutualGravitationConservesMomentum(t *testing.T) {
	s := NewSystem()
	s.FixedStar = false

	sun, _ := NewStar("sun", 1.989e30, 30, testColor)
	earth, _ := NewBody("earth", 5.972e24, 16, testColor, Vec2{AU, 0}, Vec2{Y: 29780})
	if err := s.Add(sun); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(earth); err != nil {
		t.Fatal(err)
	}

	p0 := s.Momentum()
	for i := 0; i < 100; i++ {
		if err := s.Step(SecondsPerDay); err != nil {
			t.Fatal(err)
		}
	}
	dp := s.Momentum().Sub(p0).Norm()
	scale := earth.Mass * earth.Speed()
	if dp > 1e-9*scale {
		t.Errorf("momentum drifted by %g (scale %g)", dp, scale)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Vec2 {
		s, _, _ := newSunEarth(t)
		mars, _ := NewBody("mars", 6.39e23, 12, testColor, Vec2{-1.524 * AU, 0}, Vec2{Y: 24077})
		if err := s.Add(mars); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 500; i++ {
			if err := s.Step(SecondsPerDay); err != nil {
				t.Fatal(err)
			}
		}
		out := make([]Vec2, 0, len(s.Bodies()))
		for _, b := range s.Bodies() {
			out = append(out, b.Pos)
		}
		return out
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("body %d diverged between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestStepReportsNumericDivergence(t *testing.T) {
	s, _, earth := newSunEarth(t)
	earth.Vel.X = math.NaN()

	err := s.Step(SecondsPerDay)
	if !errors.Is(err, ErrNumericDivergence) {
		t.Fatalf("expected ErrNumericDivergence, got %v", err)
	}

	var se *StepError
	if !errors.As(err, &se) {
		t.Fatal("expected a *StepError")
	}
	if se.Body != "earth" {
		t.Errorf("expected offending body earth, got %q", se.Body)
	}
}

func TestNewIntegrator(t *testing.T) {
	if NewIntegrator("leapfrog").Name() != "leapfrog" {
		t.Error("expected leapfrog")
	}
	if NewIntegrator("euler").Name() != "euler" {
		t.Error("expected euler")
	}
	if NewIntegrator("unknown").Name() != "euler" {
		t.Error("unknown names should fall back to euler")
	}
}
