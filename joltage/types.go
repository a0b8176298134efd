package joltage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/switchyard/cache"
	"github.com/katalvlaran/switchyard/logging"
)

// Sentinel errors for the joltage search.
var (
	// ErrNilMachine is returned if a nil machine pointer is passed.
	ErrNilMachine = errors.New("joltage: machine is nil")

	// ErrNoJoltages is returned for machines without a joltage budget.
	ErrNoJoltages = errors.New("joltage: machine has no joltage budget")

	// ErrNoSolution is returned when no press combination drains the budget.
	ErrNoSolution = errors.New("joltage: no solution")

	// ErrNonConvergent is returned when the level cap cut a branch that could
	// still have improved on the best candidate.
	ErrNonConvergent = fmt.Errorf("%w: residual did not converge", ErrNoSolution)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("joltage: invalid option supplied")
)

// Result is the outcome of Solve.
type Result struct {
	// Presses is the minimal total number of presses.
	Presses int

	// Counts holds how often each button is pressed, indexed by the buttons
	// of m.ReduceToJoltageWidth(). The counts sum to Presses.
	Counts []int

	// Levels is the deepest level expanded, plus one.
	Levels int

	// Expanded counts worklist entries that were expanded.
	Expanded int

	// Cache aggregates hits and misses of both memo tables.
	Cache cache.Stats
}

// Option configures Solve via functional arguments.
type Option func(*Options)

// Options holds search parameters.
type Options struct {
	// Ctx allows cancellation; checked once per worklist entry.
	Ctx context.Context

	// MaxLevels caps the number of halving levels; 0 derives the bound from
	// the largest joltage.
	MaxLevels int

	// MaxExpansions is forwarded to every toggle walk; 0 means unlimited.
	MaxExpansions int

	// Cache enables the subset and residual memo tables.
	Cache bool

	// Logger receives debug traces of candidate solutions.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns background context, derived level cap, no
// expansion limit, caching on and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Cache:  true,
		Logger: logging.Discard(),
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

// WithMaxLevels caps the halving depth. n < 0 is ErrOptionViolation.
func WithMaxLevels(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxLevels cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxLevels = n
	}
}

// WithMaxExpansions bounds each subset walk. n < 0 is ErrOptionViolation.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithoutCache disables memoization.
func WithoutCache() Option {
	return func(o *Options) { o.Cache = false }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
