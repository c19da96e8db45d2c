// Package exact provides arbitrary-precision rational arithmetic and a
// three-axis vector built on it.
//
// The package defines two value types:
//
//   - [Rational]: a fraction of two big integers, always in least terms
//   - [Vector3]: three Rationals combined axis by axis
//
// Every operation returns a fresh value; the receiver is never modified
// except by the AddAssign methods. The zero value of both types is zero.
//
// # Approximate roots
//
// [Rational.SqrtApprox] and [Vector3.MagnitudeApprox] take the integer
// square root of numerator and denominator separately. The result is a
// lossy approximation and must not be compared for equality against a true
// root.
//
// # Example
//
//	a, _ := exact.FromFloats(0, 0.1, 0.3)
//	b, _ := exact.FromFloats(100, 100, 200)
//	d2 := b.Sub(a).SquaredNorm() // exactly 59860.1 (binary-fraction inputs)
//	fmt.Println(d2.Round())      // 59860
package exact
