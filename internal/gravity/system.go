package gravity

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/san-kum/ratgrav/internal/exact"
	"golang.org/x/sync/errgroup"
)

// ErrDuplicateBody indicates the same *Body was given to a System twice.
var ErrDuplicateBody = errors.New("gravity: body appears twice in system")

// Policy selects how a System orders body updates within one step. The two
// policies give different results.
type Policy int

const (
	// PolicySequential updates bodies in slice order. Each update sees the
	// positions already committed earlier in the same step.
	PolicySequential Policy = iota

	// PolicySnapshot computes every update from the pre-step positions, in
	// parallel, and commits them together.
	PolicySnapshot
)

func (p Policy) String() string {
	switch p {
	case PolicySequential:
		return "sequential"
	case PolicySnapshot:
		return "snapshot"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return PolicySequential, nil
	case "snapshot":
		return PolicySnapshot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

type Config struct {
	G       exact.Rational
	Policy  Policy
	Workers int // snapshot concurrency limit; <= 0 means unbounded
}

func DefaultConfig() Config {
	return Config{
		G:       DefaultG(),
		Policy:  PolicySequential,
		Workers: 4,
	}
}

// System is a fixed set of bodies stepped together. It is not safe for
// concurrent use; Step must not run concurrently with itself or with
// readers of the bodies.
type System struct {
	bodies []*Body
	cfg    Config
}

func NewSystem(bodies []*Body, cfg Config) (*System, error) {
	seen := make(map[*Body]bool, len(bodies))
	for _, b := range bodies {
		if seen[b] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBody, b.name)
		}
		seen[b] = true
	}
	owned := make([]*Body, len(bodies))
	copy(owned, bodies)
	return &System{bodies: owned, cfg: cfg}, nil
}

// Bodies returns the bodies in update order. The slice is a copy; the
// bodies are not.
func (s *System) Bodies() []*Body {
	out := make([]*Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *System) Config() Config { return s.cfg }

// Distances returns each body's whole-number distance from the origin.
func (s *System) Distances() []*big.Int {
	out := make([]*big.Int, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = b.Distance()
	}
	return out
}

// Step advances every body once. Failures are returned as *StepError.
//
// Under PolicySequential a failure stops the step at the failing body:
// earlier bodies keep their new positions, the failing body and later ones
// keep their old ones. Under PolicySnapshot a failure leaves every body
// unchanged.
func (s *System) Step(ctx context.Context) error {
	switch s.cfg.Policy {
	case PolicySnapshot:
		return s.stepSnapshot(ctx)
	default:
		return s.stepSequential(ctx)
	}
}

func (s *System) stepSequential(ctx context.Context) error {
	for i, b := range s.bodies {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.Update(others(s.bodies, i), s.cfg.G); err != nil {
			return &StepError{Body: b.name, Err: err}
		}
	}
	return nil
}

func (s *System) stepSnapshot(ctx context.Context) error {
	snap := make([]*Body, len(s.bodies))
	for i, b := range s.bodies {
		snap[i] = b.Clone()
	}
	deltas := make([]exact.Vector3, len(snap))

	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.Workers > 0 {
		g.SetLimit(s.cfg.Workers)
	}
	for i := range snap {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := snap[i].Displacement(others(snap, i), s.cfg.G)
			if err != nil {
				return &StepError{Body: snap[i].name, Err: err}
			}
			deltas[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, b := range s.bodies {
		b.position = b.position.Add(deltas[i])
	}
	return nil
}

// others returns set without the element at skip.
func others(set []*Body, skip int) []*Body {
	out := make([]*Body, 0, len(set)-1)
	out = append(out, set[:skip]...)
	return append(out, set[skip+1:]...)
}
