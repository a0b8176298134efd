package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/katalvlaran/switchyard/logging"
)

// Sentinel errors for batch solving.
var (
	// ErrUnsolved is returned under PolicyAbort when a machine has no solution.
	ErrUnsolved = errors.New("batch: machine has no solution")

	// ErrNilMachine is returned when the batch contains a nil machine.
	ErrNilMachine = errors.New("batch: nil machine")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("batch: invalid option supplied")
)

// NoSolution is the sentinel stored in Result.Part1/Part2 for unsolved parts.
const NoSolution = -1

// Policy decides how unsolved machines affect the batch.
type Policy int

const (
	// PolicySkip counts unsolved machines as zero.
	PolicySkip Policy = iota
	// PolicyAbort fails the batch on the first unsolved machine.
	PolicyAbort
)

// String returns the policy name used in configuration files.
func (p Policy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyAbort:
		return "abort"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "skip" or "abort" (any case) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return PolicySkip, fmt.Errorf("%w: unknown policy %q", ErrOptionViolation, s)
	}
}

// Result is the outcome for one machine.
type Result struct {
	Index int
	Part1 int
	Part2 int
	Err1  error
	Err2  error

	// Skipped2 is set when the machine has no joltage budget; Part2 stays
	// NoSolution and the machine is not counted as unsolved.
	Skipped2 bool
}

// Report aggregates a batch.
type Report struct {
	Machines  []Result
	Part1     int
	Part2     int
	Unsolved1 int
	Unsolved2 int
	Skipped2  int
}

// Option configures Solve via functional arguments.
type Option func(*Options)

// Options holds batch parameters.
type Options struct {
	// Workers bounds concurrent machine solves.
	Workers int

	// Policy selects skip or abort for unsolved machines.
	Policy Policy

	// Part1 and Part2 enable each search.
	Part1, Part2 bool

	// MaxLevels and MaxExpansions are forwarded to the searches.
	MaxLevels     int
	MaxExpansions int

	// Cache toggles memoization in the joltage search.
	Cache bool

	Logger  *slog.Logger
	Metrics *Metrics

	err error
}

// DefaultOptions returns NumCPU workers, PolicySkip, both parts, caching on,
// no limits, a discarding logger and no metrics.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.NumCPU(),
		Policy:  PolicySkip,
		Part1:   true,
		Part2:   true,
		Cache:   true,
		Logger:  logging.Discard(),
	}
}

// WithWorkers bounds concurrency. 0 keeps the default; n < 0 is invalid.
func WithWorkers(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
		case n > 0:
			o.Workers = n
		}
	}
}

// WithPolicy selects the unsolved-machine policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		if p != PolicySkip && p != PolicyAbort {
			o.err = fmt.Errorf("%w: unknown policy %d", ErrOptionViolation, int(p))
			return
		}
		o.Policy = p
	}
}

// WithParts enables or disables each search.
func WithParts(part1, part2 bool) Option {
	return func(o *Options) {
		o.Part1, o.Part2 = part1, part2
	}
}

// WithMaxLevels forwards the joltage level cap.
func WithMaxLevels(n int) Option {
	return func(o *Options) { o.MaxLevels = n }
}

// WithMaxExpansions forwards the subset walk cap.
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// WithCache toggles joltage memoization.
func WithCache(on bool) Option {
	return func(o *Options) { o.Cache = on }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records per-machine outcomes and durations.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
