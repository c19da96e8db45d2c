package exact

import "errors"

var (
	// ErrDivisionByZero indicates a division whose divisor is zero-valued.
	ErrDivisionByZero = errors.New("exact: division by zero")

	// ErrNonFinite indicates a NaN or infinite float passed to a constructor.
	ErrNonFinite = errors.New("exact: value is not finite")

	// ErrNegativeRoot indicates a square root of a negative value.
	ErrNegativeRoot = errors.New("exact: square root of negative value")

	// ErrSyntax indicates a string that is not a valid rational literal.
	ErrSyntax = errors.New("exact: invalid rational syntax")
)
