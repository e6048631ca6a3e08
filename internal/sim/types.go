package sim

import "github.com/gmifflen/planetsim/internal/orbit"

// Config is the run budget: a fixed step in seconds and a step count.
type Config struct {
	Dt    float64
	Steps int
}

// BodyState is one body's recorded state at a sample point.
type BodyState struct {
	Pos        orbit.Vec2
	Vel        orbit.Vec2
	DistToStar float64
}

// Result holds the recorded trajectory of a run. Frames[i][j] is body j at
// Times[i]; Frames[0] is the initial condition.
type Result struct {
	Names      []string
	Times      []float64
	Frames     [][]BodyState
	Metrics    map[string]float64
	StepsTaken int
}

// Metric observes the system once per step and reduces to a single value.
type Metric interface {
	Name() string
	Observe(s *orbit.System, t float64)
	Value() float64
	Reset()
}

// Observer receives a read-only view of the system after every step.
type Observer interface {
	OnStep(s *orbit.System, t float64)
}
