// Package sim drives an orbit.System through a fixed step budget,
// recording trajectories and feeding metrics and observers. The core
// exposes no loop of its own; this is the host loop for headless runs.
package sim

import (
	"context"
	"fmt"

	"github.com/gmifflen/planetsim/internal/orbit"
)

type Simulator struct {
	sys       *orbit.System
	metrics   []Metric
	observers []Observer
}

func New(sys *orbit.System) *Simulator {
	return &Simulator{sys: sys}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// System returns the simulated system.
func (s *Simulator) System() *orbit.System {
	return s.sys
}

// Run advances the system cfg.Steps times. The partial result is returned
// alongside any error so a diverged run can still be inspected.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Names:   bodyNames(s.sys),
		Times:   make([]float64, 0, cfg.Steps+1),
		Frames:  make([][]BodyState, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
	}
	result.Times = append(result.Times, s.sys.Elapsed())
	result.Frames = append(result.Frames, snapshot(s.sys))

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.sys.Step(cfg.Dt); err != nil {
			return result, err
		}
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(s.sys, s.sys.Elapsed())
		}
		for _, o := range s.observers {
			o.OnStep(s.sys, s.sys.Elapsed())
		}

		result.Times = append(result.Times, s.sys.Elapsed())
		result.Frames = append(result.Frames, snapshot(s.sys))
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("sim: steps must be positive, got %d", cfg.Steps)
	}
	return nil
}

func bodyNames(sys *orbit.System) []string {
	names := make([]string, 0, len(sys.Bodies()))
	for _, b := range sys.Bodies() {
		names = append(names, b.Name)
	}
	return names
}

func snapshot(sys *orbit.System) []BodyState {
	frame := make([]BodyState, 0, len(sys.Bodies()))
	for _, b := range sys.Bodies() {
		frame = append(frame, BodyState{Pos: b.Pos, Vel: b.Vel, DistToStar: b.DistToStar})
	}
	return frame
}
