// seq/seq.go
package seq

import (
	"cmp"
	"errors"
	"fmt"
)

var (
	ErrEmpty      = errors.New("seq: empty list")
	ErrOutOfRange = errors.New("seq: argument outside")
)

// Number covers the element types the arithmetic helpers accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Largest returns the maximum element. It returns ErrEmpty for an empty list.
func Largest[T cmp.Ordered](list []T) (T, error) {
	var zero T
	if len(list) == 0 {
		return zero, ErrEmpty
	}
	largest := list[0]
	for _, item := range list[1:] {
		if item > largest {
			largest = item
		}
	}
	return largest, nil
}

func Map[T, U any](list []T, fn func(T) U) []U {
	out := make([]U, len(list))
	for i, v := range list {
		out[i] = fn(v)
	}
	return out
}

func Filter[T any](list []T, keep func(T) bool) []T {
	var out []T
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func Reduce[T, A any](list []T, init A, fn func(A, T) A) A {
	acc := init
	for _, v := range list {
		acc = fn(acc, v)
	}
	return acc
}

func Square[T Number](list []T) []T {
	return Map(list, func(x T) T { return x * x })
}

func Scale[T Number](list []T, multiplier T) []T {
	return Map(list, func(x T) T { return x * multiplier })
}

func Sum[T Number](list []T) T {
	var zero T
	return Reduce(list, zero, func(acc, x T) T { return acc + x })
}

func MaxValue[T cmp.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// LongerString compares by length rather than lexically; ties go to b.
func LongerString(a, b string) string {
	if len(a) > len(b) {
		return a
	}
	return b
}

// MaxFibonacci is the largest n whose Fibonacci number fits in a uint64.
const MaxFibonacci = 93

// Fibonacci returns the n-th Fibonacci number (fib(0)=0, fib(1)=1).
// n outside [0, MaxFibonacci] returns ErrOutOfRange.
func Fibonacci(n int) (uint64, error) {
	if n < 0 || n > MaxFibonacci {
		return 0, fmt.Errorf("fibonacci(%d): %w [0, %d]", n, ErrOutOfRange, MaxFibonacci)
	}
	if n == 0 {
		return 0, nil
	}
	var a, b uint64 = 0, 1
	for i := 1; i < n; i++ {
		a, b = b, a+b
	}
	return b, nil
}
