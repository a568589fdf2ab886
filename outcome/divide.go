package outcome

import "errors"

// ErrDivisionByZero is the failure reported by Divide for a zero divisor.
var ErrDivisionByZero = errors.New("Division by zero")

// Divide returns Ok(a/b), or Err(ErrDivisionByZero) when b is exactly zero.
func Divide(a, b float64) Result[float64] {
	if b == 0 {
		return Fail[float64](ErrDivisionByZero)
	}
	return Ok(a / b)
}
