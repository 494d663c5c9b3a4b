package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pulleylab/internal/sim"
	"github.com/san-kum/pulleylab/internal/world"
)

const (
	canvasWidth     = 60
	canvasHeight    = 28
	historyCapacity = 600
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the live TUI: one session rendered at the display rate while the
// world steps at its own fixed dt underneath.
type Model struct {
	session  *sim.Session
	registry *Registry
	canvas   *Canvas
	view     View

	tickRate time.Duration
	alpha    float64

	selected   world.Object
	paramKeys  []string
	paramIdx   int
	posHistory []float64

	err error
}

// NewModel builds the TUI around a session. fps caps the display rate, not
// the physics rate.
func NewModel(session *sim.Session, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	c := NewCanvas(canvasWidth, canvasHeight)
	cfg := session.World.Config()

	keys := make([]string, 0, 4)
	for k := range session.PID.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		session:    session,
		registry:   DefaultRegistry(),
		canvas:     c,
		view:       FitView(c, 0, 100, cfg.Ceiling, cfg.Floor+10),
		tickRate:   time.Second / time.Duration(fps),
		paramKeys:  keys,
		posHistory: make([]float64, 0, historyCapacity),
	}
}

// Err returns the render error that terminated the TUI, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	m.session.World.Start()
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.session.World.IsRunning() {
				m.session.World.Stop()
			} else {
				m.session.World.Start()
			}
		case "n":
			if !m.session.World.IsRunning() {
				m.session.World.StepOnce()
				m.alpha = 0
			}
		case "p":
			m.session.Plant.SetPump(!m.session.Plant.Phys.PumpOn)
		case "v":
			m.session.Plant.SetValve(!m.session.Plant.Phys.ValveOpen)
		case "b":
			m.session.Plant.ResetBallonet()
		case "c":
			m.session.PID.On = !m.session.PID.On
		case "tab":
			if len(m.paramKeys) > 0 {
				m.paramIdx = (m.paramIdx + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.selected = m.pick(msg.X, msg.Y)
		}
	case TickMsg:
		m.alpha = m.session.World.AdvanceTime()
		m.posHistory = append(m.posHistory, m.session.Plant.Phys.PayloadPosition)
		if len(m.posHistory) > historyCapacity {
			m.posHistory = m.posHistory[1:]
		}
		m.canvas.Clear()
		if err := m.registry.DrawWorld(m.canvas, m.view, m.session.World, m.alpha); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.paramIdx]
	m.session.PID.SetParam(key, m.session.PID.GetParams()[key]*factor)
}

// pick maps a terminal cell back through the canvas padding and the view
// transform, returning the topmost object containing that world point.
func (m *Model) pick(cellX, cellY int) world.Object {
	px := (cellX-2)*2 + 1
	py := (cellY-1)*4 + 2
	if px < 0 || py < 0 || px >= m.canvas.PixelWidth() || py >= m.canvas.PixelHeight() {
		return nil
	}

	var hit world.Object
	m.session.World.ForEachObjectAtPoint(m.view.ToWorld(px, py), func(obj world.Object) {
		hit = obj
	})
	return hit
}

func (m Model) View() string {
	if m.err != nil {
		return "render error: " + m.err.Error() + "\n"
	}

	ph := m.session.Plant.Phys
	w := m.session.World

	var s strings.Builder
	s.WriteString(headerStyle.Render("PULLEY LAB") + "\n")
	if w.IsRunning() {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.posHistory) > 1 {
		chart := asciigraph.Plot(m.posHistory,
			asciigraph.Height(4), asciigraph.Width(32), asciigraph.Caption("Payload position"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs  (tick %d)", w.TotalTime(), w.Iteration()))
	row("Position", fmt.Sprintf("%.2f", ph.PayloadPosition))
	row("Velocity", fmt.Sprintf("%.3f", ph.PayloadVelocity))
	row("Volume", fmt.Sprintf("%.2f %s", ph.BallonetVolume,
		ProgressBar(ph.BallonetVolume/(2*m.session.Plant.Params.InitialBallonetVolume+1e-9), 10)))
	row("Pump / Valve", OnOff(ph.PumpOn)+" / "+OnOff(ph.ValveOpen))

	s.WriteString("\n" + Separator(32) + "\n")
	row("Buoyancy", fmt.Sprintf("%.2f", ph.Buoyancy))
	row("Weight", fmt.Sprintf("%.2f", ph.Weight))
	row("Net force", fmt.Sprintf("%.2f", ph.Force))
	row("Accel", fmt.Sprintf("%.3f", ph.Accel))

	s.WriteString("\nCONTROLLER ")
	if m.session.PID.On {
		s.WriteString(barFull.Render("ON") + "\n")
	} else {
		s.WriteString(subtle.Render("off") + "\n")
	}
	p, i, d, u := m.session.PID.Terms()
	row("P / I / D", fmt.Sprintf("%.2f / %.2f / %.2f", p, i, d))
	row("Output", fmt.Sprintf("%.3f", u))
	params := m.session.PID.GetParams()
	for idx, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.3f", k, params[k])
		if idx == m.paramIdx {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if m.selected != nil {
		s.WriteString("\n" + selectedStyle.Render("Selected: "+m.selected.Name()) + "\n")
		pos := m.selected.Position()
		row("  at", fmt.Sprintf("(%.1f, %.1f)", pos.X, pos.Y))
	}

	s.WriteString(helpStyle.Render("\nSP:Pause N:Step P:Pump V:Valve B:Refill\nC:PID Tab:Param ↑↓:Tune Click:Inspect Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()))
}
