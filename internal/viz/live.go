// Package viz renders a running system to the terminal: a braille canvas
// for the orbit view plus a stats sidebar, driven by bubbletea ticks.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/gmifflen/planetsim/internal/config"
	"github.com/gmifflen/planetsim/internal/orbit"
	"github.com/gmifflen/planetsim/internal/screen"
)

const (
	canvasWidth     = 80
	canvasHeight    = 36
	trailCapacity   = 2000
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type point struct{ x, y int }

// Model holds the running system and its visualization buffers.
type Model struct {
	sys     *orbit.System
	rebuild func() (*orbit.System, error)
	mapper  *screen.Mapper
	canvas  *Canvas

	dt          float64
	fps         int
	radiusScale float64

	trails     [][]point
	energyHist []float64
	bodyStyles []lipgloss.Style

	running bool
	err     error
}

// NewModel sizes the canvas view from the configured surface: the YAML
// zoom and body radii are given in surface pixels and scaled down to the
// braille sub-pixel grid.
func NewModel(sys *orbit.System, rebuild func() (*orbit.System, error), cfg *config.Config, fps int) Model {
	cw, ch := canvasWidth*2, canvasHeight*4
	shrink := float64(ch) / float64(cfg.Height)

	mapper, err := screen.NewMapper(screen.PixelsPerAU(cfg.ScalePxPerAU*shrink),
		float64(cw)/2.0, float64(ch)/2.0)
	if err != nil {
		// Config validation happens before the view is built.
		panic(err)
	}

	m := Model{
		sys:         sys,
		rebuild:     rebuild,
		mapper:      mapper,
		canvas:      NewCanvas(canvasWidth, canvasHeight),
		dt:          cfg.Dt,
		fps:         fps,
		radiusScale: shrink,
		trails:      make([][]point, len(sys.Bodies())),
		energyHist:  make([]float64, 0, historyCapacity),
		running:     true,
	}
	for _, b := range sys.Bodies() {
		hex := fmt.Sprintf("#%02x%02x%02x", b.Color.R, b.Color.G, b.Color.B)
		m.bodyStyles = append(m.bodyStyles, lipgloss.NewStyle().Foreground(lipgloss.Color(hex)))
	}
	m.recordTrails()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and advances the simulation one step per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.err == nil {
			if err := m.sys.Step(m.dt); err != nil {
				m.err = err
				m.running = false
			} else {
				m.recordTrails()
				m.recordEnergy()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) recordTrails() {
	for i, b := range m.sys.Bodies() {
		sx, sy := m.mapper.ToScreen(b.Pos)
		m.trails[i] = append(m.trails[i], point{int(sx), int(sy)})
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

func (m *Model) recordEnergy() {
	m.energyHist = append(m.energyHist, m.sys.Energy())
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}
}

func (m *Model) reset() {
	if m.rebuild == nil {
		return
	}
	sys, err := m.rebuild()
	if err != nil {
		m.err = err
		return
	}
	m.sys = sys
	m.err = nil
	m.running = true
	m.trails = make([][]point, len(sys.Bodies()))
	m.energyHist = m.energyHist[:0]
	m.recordTrails()
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, trail := range m.trails {
		for i, pt := range trail {
			if i == 0 {
				m.canvas.Set(pt.x, pt.y)
				continue
			}
			// Consecutive samples can land several sub-pixels apart at
			// coarse time steps; connect them so the trail stays a line.
			m.canvas.DrawLine(trail[i-1].x, trail[i-1].y, pt.x, pt.y)
		}
	}
	for _, b := range m.sys.Bodies() {
		sp := m.mapper.Project(b)
		r := int(sp.Radius*m.radiusScale + 0.5)
		m.canvas.DrawCircle(int(sp.X), int(sp.Y), r)
	}
}

// View renders the orbit canvas and stats sidebar.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("PLANETSIM") + "\n")

	status := "RUNNING"
	if m.err != nil {
		status = errStyle.Render("DIVERGED")
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	days := m.sys.Elapsed() / orbit.SecondsPerDay
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.0fd (%.2fy)", days, days/365.25)) + "\n")
	s.WriteString(labelStyle.Render("Integrator") + valueStyle.Render(m.sys.Integrator().Name()) + "\n")

	s.WriteString("\nBODIES\n")
	for i, b := range m.sys.Bodies() {
		bullet := m.bodyStyles[i].Render("●")
		if b.Star {
			s.WriteString(fmt.Sprintf("%s %-10s %s\n", bullet, b.Name, valueStyle.Render("star")))
			continue
		}
		s.WriteString(fmt.Sprintf("%s %-10s %s\n", bullet, b.Name,
			valueStyle.Render(fmt.Sprintf("%.3f AU  %.1f km/s", b.DistToStar/orbit.AU, b.Speed()/1000.0))))
	}

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Total energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("sp:pause  r:reset  q:quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
