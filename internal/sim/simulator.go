package sim

import (
	"context"

	"github.com/san-kum/ratgrav/internal/gravity"
)

type Simulator struct {
	system    *gravity.System
	observers []Observer
}

func New(system *gravity.System) *Simulator {
	return &Simulator{
		system:    system,
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps the system cfg.Ticks times, recording a frame after each tick.
// If a tick fails the frames recorded so far are returned together with a
// *SimulationError; the system is left as the failing step left it.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Frames: make([]Frame, 0, cfg.Ticks+1),
	}
	s.record(result, Capture(0, s.system.Bodies()))

	for tick := 1; tick <= cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.system.Step(ctx); err != nil {
			return result, &SimulationError{Tick: tick, Err: err}
		}
		result.StepsTaken++
		s.record(result, Capture(tick, s.system.Bodies()))
	}

	return result, nil
}

func (s *Simulator) record(result *Result, f Frame) {
	result.Frames = append(result.Frames, f)
	for _, obs := range s.observers {
		obs.OnTick(f)
	}
}
