package joltage

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/katalvlaran/switchyard/cache"
	"github.com/katalvlaran/switchyard/machine"
	"github.com/katalvlaran/switchyard/toggle"
)

// choice is one button subset matching a parity target, with its size and
// per-slot drain precomputed.
type choice struct {
	buttons machine.Mask
	presses int
	drain   machine.Joltages
}

// step links the subsets chosen on the way to an entry.
type step struct {
	prev    *step
	buttons machine.Mask
	shift   uint
}

// entry is one worklist item.
type entry struct {
	presses  int
	shift    uint
	residual machine.Joltages
	path     *step
}

type residualKey struct {
	residual string
	shift    uint
}

// solver holds mutable state for one Solve call.
type solver struct {
	m         *machine.Machine
	opts      Options
	maxLevels int
	choices   *cache.Memo[machine.State, []choice]
	seen      *cache.Memo[residualKey, int]
	queue     []entry
	best      int
	bestPath  *step
	truncated bool
	res       Result
}

// Solve returns the minimal total presses that drain m's joltage budget to
// exactly zero. m is reduced with ReduceToJoltageWidth first.
func Solve(m *machine.Machine, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, ErrNilMachine
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	if !m.HasJoltages() {
		return Result{}, ErrNoJoltages
	}

	rm := m.ReduceToJoltageWidth()
	start := rm.Joltages()
	s := &solver{
		m:         rm,
		opts:      o,
		maxLevels: o.MaxLevels,
		choices:   cache.New[machine.State, []choice](1 << min(rm.Width(), 10)),
		seen:      cache.New[residualKey, int](64),
		best:      -1,
	}
	if s.maxLevels == 0 {
		s.maxLevels = bits.Len(uint(start.Max())) + 1
	}
	s.res.Counts = make([]int, rm.ButtonCount())
	if start.IsZero() {
		return s.res, nil
	}

	s.queue = append(s.queue, entry{residual: start})
	if err := s.loop(); err != nil {
		return Result{}, err
	}
	s.res.Cache = s.choices.Stats().Add(s.seen.Stats())
	// A truncated entry was still cheaper than the best candidate, so that
	// candidate is not proven minimal.
	if s.truncated {
		return Result{}, fmt.Errorf("%w: %d levels for %v", ErrNonConvergent, s.maxLevels, start)
	}
	if s.best < 0 {
		return s.res, fmt.Errorf("%w: budget %v", ErrNoSolution, start)
	}

	s.res.Presses = s.best
	for st := s.bestPath; st != nil; st = st.prev {
		for i := range s.res.Counts {
			if st.buttons.Has(i) {
				s.res.Counts[i] += 1 << st.shift
			}
		}
	}
	return s.res, nil
}

// MinPresses is Solve reduced to the press count.
func MinPresses(m *machine.Machine, opts ...Option) (int, error) {
	res, err := Solve(m, opts...)
	if err != nil {
		return 0, err
	}
	return res.Presses, nil
}

// loop drains the worklist.
func (s *solver) loop() error {
	ctx := s.opts.Ctx
	for len(s.queue) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cur := s.queue[0]
		s.queue = s.queue[1:]
		if s.best >= 0 && cur.presses >= s.best {
			continue
		}
		if int(cur.shift) >= s.maxLevels {
			s.truncated = true
			continue
		}
		if s.opts.Cache {
			key := residualKey{residual: cur.residual.Key(), shift: cur.shift}
			if prev, ok := s.seen.Get(key); ok && prev <= cur.presses {
				continue
			}
			s.seen.Put(key, cur.presses)
		}
		if err := s.expand(cur); err != nil {
			return err
		}
	}
	return nil
}

// expand pushes every successor of cur and records finished candidates.
func (s *solver) expand(cur entry) error {
	s.res.Expanded++
	s.res.Levels = max(s.res.Levels, int(cur.shift)+1)

	target := cur.residual.Parity()
	if target == 0 {
		// press nothing at this level
		s.queue = append(s.queue, entry{
			presses:  cur.presses,
			shift:    cur.shift + 1,
			residual: cur.residual.Half(),
			path:     cur.path,
		})
	}

	choices, err := s.subsets(target)
	if err != nil {
		return err
	}
	for _, c := range choices {
		rem, ok := cur.residual.Sub(c.drain)
		if !ok {
			continue
		}
		total := cur.presses + c.presses<<cur.shift
		path := &step{prev: cur.path, buttons: c.buttons, shift: cur.shift}
		if rem.IsZero() {
			if s.best < 0 || total < s.best {
				s.best, s.bestPath = total, path
				s.opts.Logger.Debug("joltage candidate",
					slog.Int("presses", total),
					slog.Int("level", int(cur.shift)),
					slog.Int("expanded", s.res.Expanded))
			}
			continue
		}
		s.queue = append(s.queue, entry{
			presses:  total,
			shift:    cur.shift + 1,
			residual: rem.Half(),
			path:     path,
		})
	}
	return nil
}

// subsets returns the button subsets whose XOR equals target.
func (s *solver) subsets(target machine.State) ([]choice, error) {
	compute := func() ([]choice, error) {
		masks, err := toggle.Subsets(s.m, target,
			toggle.WithContext(s.opts.Ctx),
			toggle.WithMaxExpansions(s.opts.MaxExpansions))
		if err != nil {
			return nil, err
		}
		out := make([]choice, len(masks))
		for i, b := range masks {
			out[i] = choice{
				buttons: b,
				presses: bits.OnesCount32(uint32(b)),
				drain:   s.m.Contributions(b),
			}
		}
		return out, nil
	}
	if !s.opts.Cache {
		return compute()
	}
	return s.choices.GetOrCompute(target, compute)
}
