package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/spheremd/internal/particle"
	"github.com/san-kum/spheremd/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 28
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the bubbletea model for the live sphere view. Each frame
// advances the simulation a few steps and redraws the rotated sphere
// with its particles.
type Model struct {
	simulator     *sim.Simulator
	initial       particle.System
	canvas        *Canvas
	camera        *Camera
	running       bool
	stepsPerFrame int
	kineticHist   []float64
	lastStats     statsLine
	err           error
}

type statsLine struct {
	candidates int64
	within     int64
	potential  float64
}

func NewModel(s *sim.Simulator) Model {
	return Model{
		simulator:     s,
		initial:       s.System().Clone(),
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		camera:        NewCamera(),
		running:       true,
		stepsPerFrame: 5,
		kineticHist:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

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
		case "left":
			m.camera.RotY -= 0.1
		case "right":
			m.camera.RotY += 0.1
		case "up":
			m.camera.RotX -= 0.1
		case "down":
			m.camera.RotX += 0.1
		case "+", "=":
			m.camera.ZoomIn()
		case "-":
			m.camera.ZoomOut()
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	for i := 0; i < m.stepsPerFrame; i++ {
		stats, err := m.simulator.Step()
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.lastStats = statsLine{stats.Candidates, stats.Within, stats.PotentialEnergy}
	}
	m.kineticHist = append(m.kineticHist, m.simulator.System().KineticEnergy())
	if len(m.kineticHist) > historyCapacity {
		m.kineticHist = m.kineticHist[1:]
	}
}

func (m *Model) reset() {
	s, err := sim.New(m.initial.Clone(), m.simulator.Config())
	if err != nil {
		m.err = err
		return
	}
	m.simulator = s
	m.kineticHist = m.kineticHist[:0]
	m.lastStats = statsLine{}
	m.err = nil
	m.running = true
}

func (m Model) View() string {
	m.canvas.Clear()
	m.camera.DrawSphere(m.canvas)
	for _, p := range m.simulator.System() {
		x, y, depth := m.camera.Project(p.R, m.canvas)
		if depth < 0 {
			continue // back hemisphere
		}
		m.canvas.Set(x, y)
	}
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("SPHERE MD") + "\n")
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("FAILED: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString("RUNNING\n\n")
	default:
		s.WriteString("PAUSED\n\n")
	}

	if len(m.kineticHist) > 1 {
		chart := asciigraph.Plot(m.kineticHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	sys := m.simulator.System()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f", m.simulator.Time())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(sys))) + "\n")
	s.WriteString(labelStyle.Render("Kinetic") + valueStyle.Render(fmt.Sprintf("%.4f", sys.KineticEnergy())) + "\n")
	s.WriteString(labelStyle.Render("Potential") + valueStyle.Render(fmt.Sprintf("%.4f", m.lastStats.potential)) + "\n")
	s.WriteString(labelStyle.Render("Pairs") + valueStyle.Render(fmt.Sprintf("%d / %d", m.lastStats.within, m.lastStats.candidates)) + "\n")
	cfg := m.simulator.Config()
	s.WriteString(labelStyle.Render("Force pass") + valueStyle.Render(fmt.Sprintf("%s ×%d", cfg.Mode, cfg.Workers)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n←→↑↓:Rotate +/-:Zoom"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts the live view and blocks until the user quits.
func Run(s *sim.Simulator) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
