// Package viz renders a live terminal flight display for a running
// simulation: altitude strip chart, velocity readouts, and attitude rates
// when the craft carries an attitude state.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/tycho-sim/tycho/internal/orbit"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives one simulation in wall-clock time. Each frame advances the
// simulation until its clock catches up with elapsed real time scaled by
// the current timescale.
type Model struct {
	sim       *orbit.Simulation
	scenario  string
	timescale float64
	running   bool
	lastTick  time.Time
	altitude  []float64
	width     int
}

func NewModel(sim *orbit.Simulation, scenario string) Model {
	return Model{
		sim:       sim,
		scenario:  scenario,
		timescale: 1.0,
		running:   true,
		altitude:  make([]float64, 0, historyCapacity),
		width:     80,
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
			m.running = !m.running
			m.lastTick = time.Time{}
		case "+", "=":
			m.timescale *= 2
		case "-", "_":
			if m.timescale > 0.125 {
				m.timescale /= 2
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		now := time.Time(msg)
		if m.running && !m.lastTick.IsZero() {
			m.advance(now.Sub(m.lastTick).Seconds() * m.timescale)
		}
		m.lastTick = now
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance(simSeconds float64) {
	target := m.sim.Time + simSeconds
	// Cap the per-frame work so a huge timescale cannot stall the UI.
	for i := 0; m.sim.Time < target && i < 20000; i++ {
		m.sim.Step()
		if m.sim.Collided && m.sim.Policy() == orbit.HaltStep {
			m.running = false
			break
		}
	}

	snap := m.snapshot()
	m.altitude = append(m.altitude, snap.Altitude)
	if len(m.altitude) > historyCapacity {
		m.altitude = m.altitude[1:]
	}
}

func (m Model) snapshot() orbit.Snapshot {
	return m.sim.Snapshot(m.sim.PrimaryCraft())
}

func (m Model) View() string {
	snap := m.snapshot()
	craft := m.sim.PrimaryCraft()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("TYCHO  %s", m.scenario)) + "\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%10.2f s  (x%g)", m.sim.Time, m.timescale))
	row("altitude", fmt.Sprintf("%12.1f m", snap.Altitude))
	row("vspeed", fmt.Sprintf("%12.2f m/s", snap.Speed))
	row("hspeed", fmt.Sprintf("%12.2f m/s", snap.HSpeed))
	if m.sim.Thrust != nil && m.sim.Thrust.Active(m.sim.Time) {
		b.WriteString(labelStyle.Render("thrust") + alertStyle.Render("BURN") + "\n")
	}
	if craft.Attitude != nil {
		w := craft.Attitude.OmegaB
		row("body rate", fmt.Sprintf("[%7.3f %7.3f %7.3f] rad/s", w[0], w[1], w[2]))
	}
	if snap.Collided {
		b.WriteString(alertStyle.Render("CONTACT") + "\n")
	}

	if len(m.altitude) >= 2 {
		graphWidth := m.width - 12
		if graphWidth > 70 {
			graphWidth = 70
		}
		if graphWidth > 10 {
			graph := asciigraph.Plot(m.altitude,
				asciigraph.Height(10),
				asciigraph.Width(graphWidth),
				asciigraph.Caption("altitude (m)"))
			b.WriteString(graphStyle.Render(graph) + "\n")
		}
	}

	paused := ""
	if !m.running {
		paused = "  [paused]"
	}
	b.WriteString(helpStyle.Render("space pause  +/- timescale  q quit" + paused))
	return b.String()
}

// Run blocks until the user quits the display.
func Run(sim *orbit.Simulation, scenario string) error {
	_, err := tea.NewProgram(NewModel(sim, scenario), tea.WithAltScreen()).Run()
	return err
}
