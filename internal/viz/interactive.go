package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/config"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// param is one editable scenario field.
type param struct {
	name string
	get  func(*config.Scenario) float64
	set  func(*config.Scenario, float64)
}

var params = []param{
	{"mass", func(s *config.Scenario) float64 { return s.Mass }, func(s *config.Scenario, v float64) { s.Mass = v }},
	{"duration", func(s *config.Scenario) float64 { return s.Duration }, func(s *config.Scenario, v float64) { s.Duration = v }},
	{"steps", func(s *config.Scenario) float64 { return float64(s.Steps) }, func(s *config.Scenario, v float64) { s.Steps = int(v) }},
	{"vx", vecGet(velocity, 0), vecSet(velocity, 0)},
	{"vy", vecGet(velocity, 1), vecSet(velocity, 1)},
	{"vz", vecGet(velocity, 2), vecSet(velocity, 2)},
	{"wx", vecGet(spin, 0), vecSet(spin, 0)},
	{"wy", vecGet(spin, 1), vecSet(spin, 1)},
	{"wz", vecGet(spin, 2), vecSet(spin, 2)},
}

var (
	velocity = func(s *config.Scenario) *config.Vec { return &s.Initial.Velocity }
	spin     = func(s *config.Scenario) *config.Vec { return &s.Initial.AngularVelocity }
)

func vecGet(field func(*config.Scenario) *config.Vec, i int) func(*config.Scenario) float64 {
	return func(s *config.Scenario) float64 { return field(s)[i] }
}

func vecSet(field func(*config.Scenario) *config.Vec, i int) func(*config.Scenario, float64) {
	return func(s *config.Scenario, v float64) { field(s)[i] = v }
}

// Picker lists the presets, lets the user tune one and then plays it live.
type Picker struct {
	state    int
	cursor   int
	presets  []string
	scenario *config.Scenario
	param    int
	editing  bool
	editBuf  string
	err      error
	player   Player
}

func NewPicker() Picker {
	return Picker{state: stateMenu, presets: config.ListPresets()}
}

func (m Picker) Init() tea.Cmd { return nil }

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "backspace" {
			m.state = stateConfig
			return m, nil
		}
		next, cmd := m.player.Update(msg)
		m.player = next.(Player)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.state == stateConfig {
		return m.configKey(key)
	}
	return m.menuKey(key)
}

func (m Picker) menuKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter":
		m.scenario = config.GetPreset(m.presets[m.cursor])
		m.state, m.param, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m Picker) configKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	p := params[m.param]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				p.set(m.scenario, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.param > 0 {
			m.param--
		}
	case "down", "j":
		if m.param < len(params)-1 {
			m.param++
		}
	case "enter":
		m.editing, m.editBuf = true, strconv.FormatFloat(p.get(m.scenario), 'g', -1, 64)
	case "left", "h":
		p.set(m.scenario, p.get(m.scenario)-0.1)
	case "right", "l":
		p.set(m.scenario, p.get(m.scenario)+0.1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m Picker) start() (Picker, tea.Cmd) {
	st, loads, err := m.scenario.Build()
	if err != nil {
		m.err = err
		return m, nil
	}
	integ := body.New(body.WithTerms(m.scenario.Terms))
	m.player = NewLive(m.scenario.Name, integ, st, loads, m.scenario.Dt(), m.scenario.Steps)
	m.state, m.err = stateSim, nil
	return m, m.player.Init()
}

func (m Picker) View() string {
	st := Themes[0].styles()
	var b strings.Builder

	switch m.state {
	case stateSim:
		return m.player.View()

	case stateMenu:
		b.WriteString(st.header.Render("RIGIDSIM") + "\n")
		for i, name := range m.presets {
			line := fmt.Sprintf("%-16s %s", name, config.Presets[name].Description)
			if i == m.cursor {
				b.WriteString(st.accent.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + st.value.Render(line) + "\n")
			}
		}
		b.WriteString(st.muted.Render("\n↑↓ select  enter configure  q quit"))

	case stateConfig:
		b.WriteString(st.header.Render(strings.ToUpper(m.scenario.Name)) + "\n")
		for i, p := range params {
			val := strconv.FormatFloat(p.get(m.scenario), 'g', 6, 64)
			if i == m.param && m.editing {
				val = m.editBuf + "_"
			}
			line := fmt.Sprintf("%-10s %s", p.name, val)
			if i == m.param {
				b.WriteString(st.accent.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + st.label.Render(p.name) + st.value.Render(val) + "\n")
			}
		}
		if m.err != nil {
			b.WriteString("\n" + st.warn.Render(m.err.Error()) + "\n")
		}
		b.WriteString(st.muted.Render("\n↑↓ select  enter edit  ←→ nudge  s start  esc back"))
	}
	return st.panel.Render(b.String()) + "\n"
}
