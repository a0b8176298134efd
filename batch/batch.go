package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/switchyard/joltage"
	"github.com/katalvlaran/switchyard/machine"
	"github.com/katalvlaran/switchyard/toggle"
)

// Solve runs the enabled searches for every machine and sums the answers.
// Results keep the input order. Under PolicyAbort the returned error wraps
// ErrUnsolved and the offending machine's search error.
func Solve(ctx context.Context, machines []*machine.Machine, opts ...Option) (*Report, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	for i, m := range machines {
		if m == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilMachine, i)
		}
	}

	results := make([]Result, len(machines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i, m := range machines {
		g.Go(func() error {
			r, err := solveOne(gctx, i, m, &o)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Machines: results}
	for _, r := range results {
		if o.Part1 {
			if r.Err1 != nil {
				rep.Unsolved1++
			} else {
				rep.Part1 += r.Part1
			}
		}
		if o.Part2 {
			switch {
			case r.Skipped2:
				rep.Skipped2++
			case r.Err2 != nil:
				rep.Unsolved2++
			default:
				rep.Part2 += r.Part2
			}
		}
	}
	o.Logger.Info("batch solved",
		slog.Int("machines", len(machines)),
		slog.Int("part1", rep.Part1),
		slog.Int("part2", rep.Part2),
		slog.Int("unsolved1", rep.Unsolved1),
		slog.Int("unsolved2", rep.Unsolved2),
		slog.Int("skipped2", rep.Skipped2))
	return rep, nil
}

// solveOne runs both parts for one machine. The returned error is non-nil
// only when the batch must stop.
func solveOne(ctx context.Context, i int, m *machine.Machine, o *Options) (Result, error) {
	r := Result{Index: i, Part1: NoSolution, Part2: NoSolution}

	if o.Part1 {
		start := time.Now()
		n, err := toggle.MinPresses(m,
			toggle.WithContext(ctx),
			toggle.WithMaxExpansions(o.MaxExpansions))
		if stop := o.settle(i, "1", err, time.Since(start)); stop != nil {
			return r, stop
		}
		if err != nil {
			r.Err1 = err
		} else {
			r.Part1 = n
		}
	}

	switch {
	case !o.Part2:
	case !m.HasJoltages():
		// part-1-only line: nothing to drain
		r.Skipped2 = true
		o.Metrics.count("2", outcomeSkipped)
	default:
		start := time.Now()
		jopts := []joltage.Option{
			joltage.WithContext(ctx),
			joltage.WithMaxLevels(o.MaxLevels),
			joltage.WithMaxExpansions(o.MaxExpansions),
			joltage.WithLogger(o.Logger.With(slog.Int("machine", i))),
		}
		if !o.Cache {
			jopts = append(jopts, joltage.WithoutCache())
		}
		n, err := joltage.MinPresses(m, jopts...)
		if stop := o.settle(i, "2", err, time.Since(start)); stop != nil {
			return r, stop
		}
		if err != nil {
			r.Err2 = err
		} else {
			r.Part2 = n
		}
	}

	o.Logger.Debug("machine solved",
		slog.Int("machine", i),
		slog.Int("part1", r.Part1),
		slog.Int("part2", r.Part2))
	return r, nil
}

// settle records metrics for one part and decides whether err stops the
// batch under the configured policy.
func (o *Options) settle(i int, part string, err error, d time.Duration) error {
	switch {
	case err == nil:
		o.Metrics.observe(part, outcomeSolved, d)
		return nil
	case unsolved(err):
		o.Metrics.observe(part, outcomeUnsolved, d)
		o.Logger.Warn("machine unsolved",
			slog.Int("machine", i),
			slog.String("part", part),
			slog.Any("error", err))
		if o.Policy == PolicyAbort {
			return fmt.Errorf("%w: machine %d part %s: %w", ErrUnsolved, i, part, err)
		}
		return nil
	default:
		o.Metrics.observe(part, outcomeError, d)
		return fmt.Errorf("batch: machine %d part %s: %w", i, part, err)
	}
}

// unsolved reports whether err means "no answer" rather than a failure.
func unsolved(err error) bool {
	return errors.Is(err, toggle.ErrUnreachable) ||
		errors.Is(err, joltage.ErrNoSolution)
}
