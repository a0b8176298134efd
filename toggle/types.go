package toggle

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/katalvlaran/switchyard/machine"
)

// Sentinel errors for the toggle search.
var (
	// ErrNilMachine is returned if a nil machine pointer is passed.
	ErrNilMachine = errors.New("toggle: machine is nil")

	// ErrUnreachable is returned when no button subset reaches the target.
	ErrUnreachable = errors.New("toggle: target state unreachable")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("toggle: invalid option supplied")

	// ErrExpansionLimit is returned when the search generated more records
	// than Options.MaxExpansions allows.
	ErrExpansionLimit = errors.New("toggle: expansion limit reached")
)

// Press is one record of the search: the switch state reached and the set
// of buttons (by index) pressed to reach it.
type Press struct {
	State   machine.State
	Buttons machine.Mask
}

// Presses returns the number of buttons pressed.
func (p Press) Presses() int { return bits.OnesCount32(uint32(p.Buttons)) }

// Next returns the lowest button index this record may still be extended
// with: one past the highest index already used.
func (p Press) Next() int { return bits.Len32(uint32(p.Buttons)) }

// Option configures the search via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks for a search.
type Options struct {
	// Ctx allows cancellation; checked once per dequeued record.
	Ctx context.Context

	// MaxExpansions, if > 0, bounds the number of generated records.
	MaxExpansions int

	// OnVisit is called for every generated record. Returning an error
	// aborts the search and propagates that error.
	OnVisit func(p Press) error

	err error
}

// DefaultOptions returns background context, no expansion limit and a
// no-op OnVisit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		MaxExpansions: 0,
		OnVisit:       func(Press) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxExpansions caps the number of generated records.
//
//	n > 0:  limit to n records
//	n == 0: no limit
//	n < 0:  invalid → ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithOnVisit registers a callback run for every generated record.
func WithOnVisit(fn func(p Press) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}
