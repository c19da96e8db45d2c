package viz

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ratgrav/internal/gravity"
	"github.com/san-kum/ratgrav/internal/sim"
)

type TickMsg time.Time

// LiveModel steps a system once per timer tick until maxTicks is reached or
// a step fails.
type LiveModel struct {
	name     string
	system   *gravity.System
	interval time.Duration
	maxTicks int
	tick     int
	running  bool
	frames   []sim.Frame
	err      error
}

func NewLiveModel(name string, system *gravity.System, maxTicks int, interval time.Duration) LiveModel {
	return LiveModel{
		name:     name,
		system:   system,
		interval: interval,
		maxTicks: maxTicks,
		running:  true,
		frames:   []sim.Frame{sim.Capture(0, system.Bodies())},
	}
}

func (m LiveModel) Init() tea.Cmd {
	return m.schedule()
}

func (m LiveModel) schedule() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Done() bool { return m.err != nil || m.tick >= m.maxTicks }

func (m LiveModel) Err() error { return m.err }

func (m LiveModel) Frames() []sim.Frame { return m.frames }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			if !m.running && !m.Done() {
				m.step()
			}
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.step()
		}
		if m.Done() {
			return m, nil
		}
		return m, m.schedule()
	}
	return m, nil
}

func (m *LiveModel) step() {
	if err := m.system.Step(context.Background()); err != nil {
		m.err = err
		return
	}
	m.tick++
	m.frames = append(m.frames, sim.Capture(m.tick, m.system.Bodies()))
}

func (m LiveModel) View() string {
	var s strings.Builder

	status := statusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = errorStyle.Render("FAILED")
	case m.Done():
		status = statusPaused.Render("DONE")
	case !m.running:
		status = statusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	last := m.frames[len(m.frames)-1]
	s.WriteString(RenderFrame(last))

	bodies := m.system.Bodies()
	if len(bodies) > 0 {
		if chart := PlotDisplacement(m.frames, bodies[0].Name(), 40, 6); chart != "" {
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	if m.err != nil {
		s.WriteString("\n" + RenderError(m.err) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause S:Step Q:Quit"))

	return RenderPanel(m.name, s.String())
}

// RunLive runs the live view until the user quits and returns the model's
// step error, if any.
func RunLive(name string, system *gravity.System, maxTicks int, interval time.Duration) error {
	final, err := tea.NewProgram(NewLiveModel(name, system, maxTicks, interval)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(LiveModel); ok {
		return m.Err()
	}
	return nil
}
