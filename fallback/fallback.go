// Package fallback runs an ordered list of strategies and keeps the first that works.
package fallback

import (
	"context"
	"errors"
	"fmt"
)

// Attempt is one named strategy.
type Attempt[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Failure records which attempt failed and why.
type Failure struct {
	Name string
	Err  error
}

func (f *Failure) Error() string { return fmt.Sprintf("%s: %v", f.Name, f.Err) }
func (f *Failure) Unwrap() error { return f.Err }

// ErrNoAttempts is returned by First when given nothing to run.
var ErrNoAttempts = errors.New("fallback: no attempts")

// First runs attempts in order and returns the first success along with its index.
// When every attempt fails the error joins one *Failure per attempt.
// A cancelled context stops the chain before the next attempt.
func First[T any](ctx context.Context, attempts ...Attempt[T]) (T, int, error) {
	var zero T
	if len(attempts) == 0 {
		return zero, -1, ErrNoAttempts
	}
	var errs []error
	for i, a := range attempts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		v, err := a.Run(ctx)
		if err == nil {
			return v, i, nil
		}
		errs = append(errs, &Failure{Name: a.Name, Err: err})
	}
	return zero, -1, errors.Join(errs...)
}
