package sim

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/san-kum/ratgrav/internal/exact"
	"github.com/san-kum/ratgrav/internal/gravity"
)

// ErrInvalidTicks indicates a non-positive tick count.
var ErrInvalidTicks = errors.New("sim: ticks must be positive")

type Config struct {
	Ticks int
}

func DefaultConfig() Config {
	return Config{Ticks: 3}
}

func (c Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidTicks, c.Ticks)
	}
	return nil
}

// BodyState is one body as seen at the end of a tick.
type BodyState struct {
	Name     string
	Position exact.Vector3
	Distance *big.Int
}

// Frame holds every body after a tick. Tick 0 is the initial state.
type Frame struct {
	Tick   int
	Bodies []BodyState
}

// Capture records the current state of bodies as the frame for tick.
func Capture(tick int, bodies []*gravity.Body) Frame {
	f := Frame{Tick: tick, Bodies: make([]BodyState, len(bodies))}
	for i, b := range bodies {
		f.Bodies[i] = BodyState{
			Name:     b.Name(),
			Position: b.Position(),
			Distance: b.Distance(),
		}
	}
	return f
}

type Observer interface {
	OnTick(f Frame)
}

type Result struct {
	Frames     []Frame
	StepsTaken int
}

// Final returns the last recorded frame.
func (r *Result) Final() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

// SimulationError reports the tick a run stopped at.
type SimulationError struct {
	Tick int
	Err  error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Err)
}

func (e *SimulationError) Unwrap() error {
	return e.Err
}
