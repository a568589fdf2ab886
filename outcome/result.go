// outcome/result.go
package outcome

import (
	"errors"
	"fmt"
)

// ErrUnset is the error carried by a zero Result.
var ErrUnset = errors.New("outcome: unset result")

// Result holds either a value (Ok) or an error (Err), never both.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

func Ok[T any](v T) Result[T] { return Result[T]{value: v, ok: true} }

// Err builds a failed Result carrying msg.
func Err[T any](msg string) Result[T] { return Fail[T](errors.New(msg)) }

// Fail builds a failed Result from err. A nil err is replaced with ErrUnset.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnset
	}
	return Result[T]{err: err}
}

// From adapts a conventional (value, error) pair.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool { return r.ok }

func (r Result[T]) Value() (T, bool) { return r.value, r.ok }

// Err returns the failure, or nil for Ok. A zero Result reports ErrUnset.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return ErrUnset
	}
	return r.err
}

func (r Result[T]) Unwrap() (T, error) { return r.value, r.Err() }

func (r Result[T]) Or(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%v)", r.Err())
}

// Match dispatches on the variant of r.
func Match[T, R any](r Result[T], onOk func(T) R, onErr func(error) R) R {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.Err())
}
