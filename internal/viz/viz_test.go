package viz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ratgrav/internal/config"
	"github.com/san-kum/ratgrav/internal/exact"
	"github.com/san-kum/ratgrav/internal/gravity"
	"github.com/san-kum/ratgrav/internal/sim"
)

func buildSystem(t *testing.T, preset string) *gravity.System {
	t.Helper()
	sys, err := config.GetPreset(preset).BuildSystem()
	if err != nil {
		t.Fatal(err)
	}
	return sys
}

func TestRenderFrame(t *testing.T) {
	sys := buildSystem(t, "earth_moon")
	out := RenderFrame(sim.Capture(0, sys.Bodies()))

	for _, want := range []string{"moon", "earth", "362600000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderExact(t *testing.T) {
	sys := buildSystem(t, "binary")
	out := RenderExact(sim.Capture(0, sys.Bodies()))
	if !strings.Contains(out, "right: (1, 1/2, 0)") {
		t.Errorf("unexpected exact rendering:\n%s", out)
	}
}

func TestDisplacementSeries(t *testing.T) {
	sys := buildSystem(t, "earth_moon")
	result, err := sim.New(sys).Run(context.Background(), sim.Config{Ticks: 3})
	if err != nil {
		t.Fatal(err)
	}

	series := DisplacementSeries(result.Frames, "earth")
	if len(series) != 4 {
		t.Fatalf("expected 4 points, got %d", len(series))
	}
	if series[0] != 0 {
		t.Errorf("first point = %v, want 0", series[0])
	}
	for i := 1; i < len(series); i++ {
		if series[i] <= series[i-1] {
			t.Errorf("earth displacement not increasing at %d: %v", i, series)
		}
	}

	if got := DisplacementSeries(result.Frames, "pluto"); len(got) != 0 {
		t.Errorf("unknown body produced %v", got)
	}
	if PlotDisplacement(result.Frames, "earth", 40, 5) == "" {
		t.Error("expected a chart")
	}
	if PlotDisplacement(result.Frames[:1], "earth", 40, 5) != "" {
		t.Error("single point should not chart")
	}
}

func TestLiveModel_Steps(t *testing.T) {
	sys := buildSystem(t, "earth_moon")
	m := NewLiveModel("earth_moon", sys, 2, time.Millisecond)

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(LiveModel)
	if len(m.Frames()) != 2 || cmd == nil {
		t.Fatalf("after one tick: frames=%d cmd=%v", len(m.Frames()), cmd)
	}

	next, cmd = m.Update(TickMsg(time.Now()))
	m = next.(LiveModel)
	if !m.Done() || cmd != nil {
		t.Errorf("expected done with no further ticks, done=%v", m.Done())
	}

	next, _ = m.Update(TickMsg(time.Now()))
	if len(next.(LiveModel).Frames()) != 3 {
		t.Error("stepped past maxTicks")
	}
	if !strings.Contains(m.View(), "DONE") {
		t.Error("view should report DONE")
	}
}

func TestLiveModel_PauseAndStep(t *testing.T) {
	sys := buildSystem(t, "earth_moon")
	m := NewLiveModel("earth_moon", sys, 5, time.Millisecond)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(LiveModel)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(LiveModel)
	if len(m.Frames()) != 1 {
		t.Fatalf("paused model stepped")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should report PAUSED")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = next.(LiveModel)
	if len(m.Frames()) != 2 {
		t.Errorf("single step: frames=%d", len(m.Frames()))
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestLiveModel_Failure(t *testing.T) {
	sys := buildSystem(t, "coincident")
	m := NewLiveModel("coincident", sys, 3, time.Millisecond)

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(LiveModel)
	if !errors.Is(m.Err(), exact.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", m.Err())
	}
	if cmd != nil {
		t.Error("failed model kept ticking")
	}
	if !strings.Contains(m.View(), "FAILED") {
		t.Error("view should report FAILED")
	}
}
