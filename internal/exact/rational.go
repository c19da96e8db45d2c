package exact

import (
	"fmt"
	"math/big"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Rational is an immutable arbitrary-precision fraction.
//
// The denominator is always positive and shares no factor with the
// numerator. Every operation reduces its result, which keeps the underlying
// integers from growing without bound across long chains of arithmetic.
type Rational struct {
	// nil num means 0, nil den means 1. The pointed-to ints are never
	// modified once a Rational holds them.
	num *big.Int
	den *big.Int
}

// New returns num/den in least terms.
func New(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(big.NewInt(num), big.NewInt(den)), nil
}

// FromInt returns i as a Rational.
func FromInt(i int64) Rational {
	return Rational{num: big.NewInt(i)}
}

// FromBigInt returns i as a Rational. i is copied.
func FromBigInt(i *big.Int) Rational {
	return Rational{num: new(big.Int).Set(i)}
}

// FromFloat returns the exact value of f. No rounding happens: a float64 is
// a binary fraction and converts to a Rational without loss.
func FromFloat(f float64) (Rational, error) {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return Rational{}, fmt.Errorf("%w: %v", ErrNonFinite, f)
	}
	return fromRat(r), nil
}

// MustFromFloat is like FromFloat but panics on NaN or infinity.
// Intended for constants.
func MustFromFloat(f float64) Rational {
	r, err := FromFloat(f)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse reads an integer ("42"), a fraction ("-3/4") or a decimal
// ("6.674e-11") into an exact Rational.
func Parse(s string) (Rational, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rational{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return fromRat(r), nil
}

func fromRat(r *big.Rat) Rational {
	return reduce(new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom()))
}

// reduce takes ownership of num and den and returns num/den in least terms
// with a positive denominator. den must be non-zero.
func reduce(num, den *big.Int) Rational {
	if den.Sign() == 0 {
		panic("exact: zero denominator")
	}
	if num.Sign() == 0 {
		return Rational{}
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	g := new(big.Int).GCD(nil, nil, num, den)
	if g.Cmp(bigOne) != 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	if den.Cmp(bigOne) == 0 {
		return Rational{num: num}
	}
	return Rational{num: num, den: den}
}

func (r Rational) n() *big.Int {
	if r.num == nil {
		return bigZero
	}
	return r.num
}

func (r Rational) d() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int { return new(big.Int).Set(r.n()) }

// Den returns a copy of the denominator. It is always positive.
func (r Rational) Den() *big.Int { return new(big.Int).Set(r.d()) }

// Sign returns -1, 0 or +1.
func (r Rational) Sign() int { return r.n().Sign() }

// IsZero reports whether r == 0.
func (r Rational) IsZero() bool { return r.Sign() == 0 }

// IsInt reports whether the denominator is 1.
func (r Rational) IsInt() bool { return r.d().Cmp(bigOne) == 0 }

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	if r.IsInt() && o.IsInt() {
		return reduce(new(big.Int).Add(r.n(), o.n()), big.NewInt(1))
	}
	num := new(big.Int).Mul(r.n(), o.d())
	num.Add(num, new(big.Int).Mul(o.n(), r.d()))
	return reduce(num, new(big.Int).Mul(r.d(), o.d()))
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	return r.Add(o.Neg())
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	if r.IsZero() {
		return Rational{}
	}
	return Rational{num: new(big.Int).Neg(r.n()), den: r.den}
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	if r.IsZero() || o.IsZero() {
		return Rational{}
	}
	return reduce(
		new(big.Int).Mul(r.n(), o.n()),
		new(big.Int).Mul(r.d(), o.d()),
	)
}

// Div returns r / o, or ErrDivisionByZero if o is zero.
func (r Rational) Div(o Rational) (Rational, error) {
	if o.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(
		new(big.Int).Mul(r.n(), o.d()),
		new(big.Int).Mul(r.d(), o.n()),
	), nil
}

// AddAssign sets r to r + o.
func (r *Rational) AddAssign(o Rational) {
	*r = r.Add(o)
}

// Pow returns r raised to the power e. Pow(0) is 1.
func (r Rational) Pow(e uint) Rational {
	x := big.NewInt(int64(e))
	// Powers of coprime integers stay coprime, so no reduction is needed.
	num := new(big.Int).Exp(r.n(), x, nil)
	den := new(big.Int).Exp(r.d(), x, nil)
	if den.Cmp(bigOne) == 0 {
		return Rational{num: num}
	}
	return Rational{num: num, den: den}
}

// SqrtApprox returns isqrt(num)/isqrt(den), where isqrt is the floor of the
// true square root. This is not the square root of r: both parts are
// truncated independently, so the result can be off in either direction.
func (r Rational) SqrtApprox() (Rational, error) {
	if r.Sign() < 0 {
		return Rational{}, fmt.Errorf("%w: %s", ErrNegativeRoot, r)
	}
	return r.isqrt(), nil
}

// isqrt assumes r >= 0. den >= 1 so isqrt(den) >= 1.
func (r Rational) isqrt() Rational {
	return reduce(new(big.Int).Sqrt(r.n()), new(big.Int).Sqrt(r.d()))
}

// Round returns the nearest integer, rounding halves away from zero.
func (r Rational) Round() Rational {
	if r.IsInt() {
		return r
	}
	abs := new(big.Int).Abs(r.n())
	q, m := new(big.Int).QuoRem(abs, r.d(), new(big.Int))
	if m.Lsh(m, 1).Cmp(r.d()) >= 0 {
		q.Add(q, bigOne)
	}
	if r.Sign() < 0 {
		q.Neg(q)
	}
	return reduce(q, big.NewInt(1))
}

// Floor returns the largest integer not greater than r.
func (r Rational) Floor() *big.Int {
	// Div is Euclidean; with a positive divisor that is floor division.
	return new(big.Int).Div(r.n(), r.d())
}

// Cmp returns -1, 0 or +1 depending on whether r is less than, equal to or
// greater than o.
func (r Rational) Cmp(o Rational) int {
	a := new(big.Int).Mul(r.n(), o.d())
	b := new(big.Int).Mul(o.n(), r.d())
	return a.Cmp(b)
}

// Equal reports whether r and o are the same number.
func (r Rational) Equal(o Rational) bool {
	return r.n().Cmp(o.n()) == 0 && r.d().Cmp(o.d()) == 0
}

// Float64 returns the nearest float64. For display only.
func (r Rational) Float64() float64 {
	f, _ := new(big.Rat).SetFrac(r.n(), r.d()).Float64()
	return f
}

// String formats r as "n" or "n/d".
func (r Rational) String() string {
	if r.IsInt() {
		return r.n().String()
	}
	return r.n().String() + "/" + r.d().String()
}

func (r Rational) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rational) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
