// Package orbit provides the gravitational N-body core of the simulator.
//
// The package owns the set of celestial bodies and their physical state:
//
//   - [Body]: a point mass with position, velocity and display attributes
//   - [System]: body registry, pairwise force computation and the step loop
//   - [Integrator]: fixed-step integration scheme ([SemiImplicitEuler], [Leapfrog])
//
// Positions are meters in simulation space with the star at the origin,
// velocities are meters per second. One [System.Step] advances every
// planet by a fixed time step using forces computed from the pre-step
// position snapshot.
//
// # Energy Conservation
//
// [System.Energy] and [System.AngularMomentum] expose the conserved
// quantities of the softened two-body problem for drift monitoring:
//
//	sys := orbit.NewSystem()
//	e0 := sys.Energy()
//	sys.Step(orbit.SecondsPerDay)
//	drift := math.Abs(sys.Energy()-e0) / math.Abs(e0)
package orbit
