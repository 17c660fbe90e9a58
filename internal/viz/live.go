package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/metrics"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
	frameRate       = 30
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type frame struct {
	state  body.State
	t      float64
	energy float64
}

func newFrame(s body.State, t float64) frame {
	return frame{state: s, t: t, energy: metrics.KineticEnergy(s)}
}

// Player shows a body either stepping live or replaying a recorded run.
type Player struct {
	name     string
	live     bool
	integ    *body.Integrator
	loads    body.Loads
	h        float64
	limit    int
	steps    int
	initial  body.State
	frames   []frame
	playHead int // -1 follows the newest frame
	running  bool
	canvas   *Canvas
	camera   *Camera
	theme    int
	showHelp bool
	err      error
}

// NewLive returns a player that steps s under loads every tick. limit caps
// the number of steps; 0 means unbounded.
func NewLive(name string, integ *body.Integrator, s body.State, loads body.Loads, h float64, limit int) Player {
	p := Player{
		name:     name,
		live:     true,
		integ:    integ,
		loads:    loads,
		h:        h,
		limit:    limit,
		initial:  s.Clone(),
		playHead: -1,
		running:  true,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		camera:   NewCamera(),
	}
	p.camera.Fit(s.Cloud)
	p.frames = append(make([]frame, 0, historyCapacity), newFrame(p.initial.Clone(), 0))
	return p
}

// NewReplay returns a player over recorded states and their times.
func NewReplay(name string, states []body.State, times []float64) Player {
	p := Player{
		name:    name,
		running: true,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
	}
	for i, s := range states {
		p.frames = append(p.frames, newFrame(s, times[i]))
	}
	if len(states) > 0 {
		p.initial = states[0]
		p.camera.Fit(states[0].Cloud)
	}
	return p
}

func (m Player) Init() tea.Cmd { return tick() }

func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "left", "h":
			m.camera.Orbit(-0.1, 0)
		case "right", "l":
			m.camera.Orbit(0.1, 0)
		case "up", "k":
			m.camera.Orbit(0, 0.1)
		case "down", "j":
			m.camera.Orbit(0, -0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "f":
			m.camera.Fit(m.current().state.Cloud)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Player) advance() {
	if m.live && m.playHead == -1 {
		m.step()
		return
	}
	m.playHead++
	if m.playHead >= len(m.frames) {
		if m.live {
			m.playHead = -1
		} else {
			m.playHead = len(m.frames) - 1
			m.running = false
		}
	}
}

func (m *Player) step() {
	if m.limit > 0 && m.steps >= m.limit {
		m.running = false
		return
	}
	last := m.frames[len(m.frames)-1]
	next, err := m.integ.Step(last.state, m.loads, m.h)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.steps++
	m.frames = append(m.frames, newFrame(next, last.t+m.h))
	if len(m.frames) > historyCapacity {
		m.frames = m.frames[1:]
	}
}

func (m *Player) scrub(dir int) {
	if len(m.frames) == 0 {
		return
	}
	if m.playHead == -1 {
		m.playHead = len(m.frames) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.frames) {
		if m.live {
			m.playHead = -1
		} else {
			m.playHead = len(m.frames) - 1
		}
	}
}

func (m *Player) reset() {
	m.err = nil
	m.running = true
	if !m.live {
		m.playHead = 0
		return
	}
	m.steps = 0
	m.playHead = -1
	m.frames = append(m.frames[:0], newFrame(m.initial.Clone(), 0))
}

func (m Player) current() frame {
	if m.playHead >= 0 && m.playHead < len(m.frames) {
		return m.frames[m.playHead]
	}
	return m.frames[len(m.frames)-1]
}

// Time returns the simulated time of the frame on screen.
func (m Player) Time() float64 {
	if len(m.frames) == 0 {
		return 0
	}
	return m.current().t
}

// WithTheme returns the player using the named theme.
func (m Player) WithTheme(name string) Player {
	for i, t := range Themes {
		if t.Name == name {
			m.theme = i
		}
	}
	return m
}

// Err returns the step error that stopped a live player, if any.
func (m Player) Err() error { return m.err }

func (m Player) status() string {
	switch {
	case m.err != nil:
		return "FAILED"
	case m.playHead >= 0 && m.live:
		return fmt.Sprintf("REPLAY (%.2fs)", m.frames[m.playHead].t-m.frames[len(m.frames)-1].t)
	case !m.running:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

func (m Player) View() string {
	if len(m.frames) == 0 {
		return "no frames\n"
	}
	theme := Themes[m.theme]
	st := theme.styles()
	cur := m.current()

	m.canvas.Clear()
	DrawCloud(m.canvas, cur.state.Cloud, m.camera)
	canvasView := lipgloss.NewStyle().Padding(1, 2).Foreground(theme.Text).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")
	status := m.status()
	if m.err != nil {
		s.WriteString(st.warn.Render(status) + "\n" + st.warn.Render(m.err.Error()) + "\n\n")
	} else {
		s.WriteString(st.accent.Render(status) + "\n\n")
	}

	energies := make([]float64, 0, len(m.frames))
	end := len(m.frames)
	if m.playHead >= 0 {
		end = m.playHead + 1
	}
	for _, f := range m.frames[:end] {
		energies = append(energies, f.energy)
	}
	if len(energies) > 1 {
		chart := asciigraph.Plot(energies, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(st.muted.Render(chart) + "\n\n")
	}

	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.3fs", cur.t)) + "\n")
	if m.live && m.limit > 0 {
		s.WriteString(st.label.Render("Steps") + st.value.Render(ProgressBar(float64(m.steps)/float64(m.limit), 20)) + "\n")
	} else if !m.live {
		s.WriteString(st.label.Render("Frame") + st.value.Render(ProgressBar(float64(m.playHead+1)/float64(len(m.frames)), 20)) + "\n")
	}
	s.WriteString(st.label.Render("Energy") + st.value.Render(fmt.Sprintf("%.4g", cur.energy)) + "\n\n")

	for _, row := range []struct {
		label string
		v     linalg.Vec3
	}{
		{"Centre", cur.state.Centre},
		{"Velocity", cur.state.Velocity},
		{"Angle", cur.state.Angle},
		{"Spin", cur.state.AngularVelocity},
	} {
		s.WriteString(RenderVector(row.label, row.v, theme) + "\n")
	}

	spin := make([]float64, 0, end)
	for _, f := range m.frames[:end] {
		spin = append(spin, f.state.AngularVelocity.Norm())
	}
	s.WriteString("\n" + st.label.Render("|ω|") + st.value.Render(Sparkline(spin, 24)) + "\n")
	s.WriteString(st.muted.Render("\nSP:Pause R:Reset Q:Quit\n[ ]:Scrub ←→↑↓:Orbit ?:Help"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return st.panel.Render(helpText) + "\n" + view
	}
	return view
}

const helpText = `Space/P  pause or resume
R        reset
[ ]      scrub history
←→↑↓     orbit camera (hjkl)
+ -      zoom
F        refit camera
T        cycle theme
?        toggle help
Q        quit`
