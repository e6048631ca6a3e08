package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gmifflen/planetsim/internal/config"
	"github.com/gmifflen/planetsim/internal/orbit"
)

func newEarthModel(t *testing.T) Model {
	t.Helper()
	cfg := config.GetPreset("earth")
	sys, err := cfg.BuildSystem()
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(sys, cfg.BuildSystem, cfg, 30)
}

func TestTickAdvancesSimulation(t *testing.T) {
	m := newEarthModel(t)

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	if m.sys.Elapsed() != orbit.SecondsPerDay {
		t.Errorf("expected one day elapsed, got %f", m.sys.Elapsed())
	}
	if len(m.trails[1]) != 2 {
		t.Errorf("expected initial plus one trail point, got %d", len(m.trails[1]))
	}
}

func TestPauseStopsStepping(t *testing.T) {
	m := newEarthModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	if m.running {
		t.Fatal("expected paused")
	}

	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.sys.Elapsed() != 0 {
		t.Error("paused model should not step")
	}
}

func TestResetRebuildsSystem(t *testing.T) {
	m := newEarthModel(t)

	for i := 0; i < 5; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)

	if m.sys.Elapsed() != 0 {
		t.Errorf("expected a fresh system after reset, elapsed %f", m.sys.Elapsed())
	}
	if !m.running {
		t.Error("expected reset model to run")
	}
}

func TestTrailsDrawnAsConnectedLines(t *testing.T) {
	m := newEarthModel(t)

	// Two samples well over a sub-pixel apart, as a coarse time step or a
	// tight zoom produces.
	m.trails[1] = []point{{10, 20}, {30, 20}}
	m.draw()

	for x := 10; x <= 30; x++ {
		if m.canvas.Grid[20/4][x/2]&rune(pixelMap[20%4][x%2]) == 0 {
			t.Fatalf("gap in trail at sub-pixel x=%d", x)
		}
	}
}

func TestViewShowsBodies(t *testing.T) {
	m := newEarthModel(t)
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "Earth") || !strings.Contains(view, "Sun") {
		t.Error("view missing body names")
	}
	if !strings.Contains(view, "PLANETSIM") {
		t.Error("view missing header")
	}
}
