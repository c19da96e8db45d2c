package gravity

import (
	"fmt"
	"math/big"

	"github.com/san-kum/ratgrav/internal/exact"
)

// DefaultGravitationalConstant is G in SI units, as a float literal.
const DefaultGravitationalConstant = 6.674e-11

// DefaultG returns the exact value of the float DefaultGravitationalConstant.
func DefaultG() exact.Rational {
	return exact.MustFromFloat(DefaultGravitationalConstant)
}

// Body is a point mass. Its mass is fixed at construction; its position
// changes only through Update.
type Body struct {
	name     string
	mass     exact.Rational
	position exact.Vector3
}

// NewBody builds a body from float inputs, each converted exactly.
func NewBody(name string, mass, x, y, z float64) (*Body, error) {
	m, err := exact.FromFloat(mass)
	if err != nil {
		return nil, fmt.Errorf("body %s: mass: %w", name, err)
	}
	pos, err := exact.FromFloats(x, y, z)
	if err != nil {
		return nil, fmt.Errorf("body %s: position: %w", name, err)
	}
	return NewExactBody(name, m, pos), nil
}

func NewExactBody(name string, mass exact.Rational, position exact.Vector3) *Body {
	return &Body{name: name, mass: mass, position: position}
}

func (b *Body) Name() string { return b.name }

func (b *Body) Mass() exact.Rational { return b.mass }

func (b *Body) Position() exact.Vector3 { return b.position }

// Clone returns an independent copy. Rationals are immutable, so sharing
// them is safe.
func (b *Body) Clone() *Body {
	c := *b
	return &c
}

// Distance is the whole-number distance from the origin, computed with the
// approximate magnitude and floored.
func (b *Body) Distance() *big.Int {
	return b.position.MagnitudeApprox().Floor()
}

// Displacement returns the position change one update against others would
// apply, without applying it. For every other body o, with d = b - o:
//
//	Δ += -G ⊙ m ⊙ d ⊘ (|d|² · |d|~)
//
// where m is b's own mass and |d|~ is the approximate magnitude. The
// force is turned directly into displacement; there is no velocity state.
//
// A body coincident with b (including b itself) makes the divisor zero and
// fails with exact.ErrDivisionByZero.
func (b *Body) Displacement(others []*Body, g exact.Rational) (exact.Vector3, error) {
	var change exact.Vector3
	coeff := exact.Broadcast(g).Mul(exact.Broadcast(b.mass)).Neg()

	for _, o := range others {
		diff := b.position.Sub(o.position)
		cube := exact.Broadcast(diff.SquaredNorm().Mul(diff.MagnitudeApprox()))
		term, err := coeff.Mul(diff).Div(cube)
		if err != nil {
			return exact.Vector3{}, fmt.Errorf("against %s: %w", o.name, err)
		}
		change.AddAssign(term)
	}
	return change, nil
}

// Update moves b by Displacement(others, g). On error b is unchanged.
func (b *Body) Update(others []*Body, g exact.Rational) error {
	delta, err := b.Displacement(others, g)
	if err != nil {
		return err
	}
	b.position = b.position.Add(delta)
	return nil
}

func (b *Body) String() string {
	return fmt.Sprintf("%s{mass: %s, position: %s}", b.name, b.mass, b.position)
}
