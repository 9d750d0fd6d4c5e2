package generation

import "fmt"

// Check is a semantic rule a schema cannot express, such as "exactly one
// answer is correct". Checks run in order after decoding; the first
// failure stops the pipeline.
type Check[T any] interface {
	Name() string
	Check(v *T) error
}

// CheckFunc adapts a function into a Check.
func CheckFunc[T any](name string, fn func(v *T) error) Check[T] {
	return checkFunc[T]{name: name, fn: fn}
}

type checkFunc[T any] struct {
	name string
	fn   func(v *T) error
}

func (c checkFunc[T]) Name() string     { return c.name }
func (c checkFunc[T]) Check(v *T) error { return c.fn(v) }

// CheckError names the check that rejected the content.
type CheckError struct {
	Check string
	Err   error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check %q: %v", e.Check, e.Err)
}

func (e *CheckError) Unwrap() error { return e.Err }
