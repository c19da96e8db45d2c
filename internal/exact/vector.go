package exact

import "fmt"

// Vector3 is a three-axis vector of Rationals. All arithmetic is
// elementwise: each axis combines only with the same axis of the other
// operand. There is no dot or cross product here.
type Vector3 struct {
	X, Y, Z Rational
}

func NewVector3(x, y, z Rational) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// FromFloats converts each float exactly.
func FromFloats(x, y, z float64) (Vector3, error) {
	var v Vector3
	var err error
	if v.X, err = FromFloat(x); err != nil {
		return Vector3{}, err
	}
	if v.Y, err = FromFloat(y); err != nil {
		return Vector3{}, err
	}
	if v.Z, err = FromFloat(z); err != nil {
		return Vector3{}, err
	}
	return v, nil
}

// Broadcast returns a vector holding s on every axis.
func Broadcast(s Rational) Vector3 {
	return Vector3{X: s, Y: s, Z: s}
}

// BroadcastFloat is Broadcast of the exact value of f.
func BroadcastFloat(f float64) (Vector3, error) {
	s, err := FromFloat(f)
	if err != nil {
		return Vector3{}, err
	}
	return Broadcast(s), nil
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X.Add(o.X), Y: v.Y.Add(o.Y), Z: v.Z.Add(o.Z)}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y), Z: v.Z.Sub(o.Z)}
}

func (v Vector3) Neg() Vector3 {
	return Vector3{X: v.X.Neg(), Y: v.Y.Neg(), Z: v.Z.Neg()}
}

func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{X: v.X.Mul(o.X), Y: v.Y.Mul(o.Y), Z: v.Z.Mul(o.Z)}
}

// Div divides axis by axis. It fails with ErrDivisionByZero naming the
// first zero axis of o.
func (v Vector3) Div(o Vector3) (Vector3, error) {
	x, err := v.X.Div(o.X)
	if err != nil {
		return Vector3{}, fmt.Errorf("x axis: %w", err)
	}
	y, err := v.Y.Div(o.Y)
	if err != nil {
		return Vector3{}, fmt.Errorf("y axis: %w", err)
	}
	z, err := v.Z.Div(o.Z)
	if err != nil {
		return Vector3{}, fmt.Errorf("z axis: %w", err)
	}
	return Vector3{X: x, Y: y, Z: z}, nil
}

// AddAssign adds o into v in place.
func (v *Vector3) AddAssign(o Vector3) {
	v.X.AddAssign(o.X)
	v.Y.AddAssign(o.Y)
	v.Z.AddAssign(o.Z)
}

// SquaredNorm returns x² + y² + z² exactly.
func (v Vector3) SquaredNorm() Rational {
	var sum Rational
	sum.AddAssign(v.X.Pow(2))
	sum.AddAssign(v.Y.Pow(2))
	sum.AddAssign(v.Z.Pow(2))
	return sum
}

// MagnitudeApprox is SquaredNorm followed by Rational.SqrtApprox and carries
// the same truncation error.
func (v Vector3) MagnitudeApprox() Rational {
	// A sum of squares is never negative.
	return v.SquaredNorm().isqrt()
}

func (v Vector3) IsZero() bool {
	return v.X.IsZero() && v.Y.IsZero() && v.Z.IsZero()
}

func (v Vector3) Equal(o Vector3) bool {
	return v.X.Equal(o.X) && v.Y.Equal(o.Y) && v.Z.Equal(o.Z)
}

// Floats returns the nearest float64 of each axis. For display only.
func (v Vector3) Floats() [3]float64 {
	return [3]float64{v.X.Float64(), v.Y.Float64(), v.Z.Float64()}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%s, %s, %s)", v.X, v.Y, v.Z)
}
