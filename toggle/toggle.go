package toggle

import (
	"context"
	"fmt"

	"github.com/katalvlaran/switchyard/machine"
)

// walker encapsulates mutable search state for one Walk call.
type walker struct {
	m        *machine.Machine
	target   machine.State
	opts     Options
	ctx      context.Context
	queue    []Press
	expanded int
}

// Walk explores button subsets of m breadth-first and calls fn for every
// non-empty subset whose resulting state equals target, smallest first.
// If fn returns true the walk stops and Walk reports true. The empty subset
// is never reported, even when target is zero.
func Walk(m *machine.Machine, target machine.State, fn func(Press) bool, opts ...Option) (bool, error) {
	if m == nil {
		return false, ErrNilMachine
	}
	o, err := collect(opts)
	if err != nil {
		return false, err
	}

	w := &walker{
		m:      m,
		target: target,
		opts:   o,
		ctx:    o.Ctx,
		queue:  make([]Press, 0, 1+m.ButtonCount()),
	}
	// seed with nothing pressed
	w.queue = append(w.queue, Press{})

	return w.loop(fn)
}

// loop processes the queue until fn accepts a match, the queue drains,
// an error occurs, or the context is cancelled.
func (w *walker) loop(fn func(Press) bool) (bool, error) {
	n := w.m.ButtonCount()
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return false, w.ctx.Err()
		default:
		}

		cur := w.dequeue()
		for i := cur.Next(); i < n; i++ {
			next := Press{
				State:   w.m.Apply(cur.State, i),
				Buttons: cur.Buttons | 1<<uint(i),
			}
			if err := w.visit(next); err != nil {
				return false, err
			}
			if next.State == w.target && fn(next) {
				return true, nil
			}
			// records using the last button cannot be extended
			if i+1 < n {
				w.queue = append(w.queue, next)
			}
		}
	}
	return false, nil
}

// dequeue pops the first record.
func (w *walker) dequeue() Press {
	p := w.queue[0]
	w.queue = w.queue[1:]
	return p
}

// visit counts the record against MaxExpansions and runs OnVisit.
func (w *walker) visit(p Press) error {
	w.expanded++
	if w.opts.MaxExpansions > 0 && w.expanded > w.opts.MaxExpansions {
		return fmt.Errorf("%w: %d records", ErrExpansionLimit, w.opts.MaxExpansions)
	}
	if err := w.opts.OnVisit(p); err != nil {
		return fmt.Errorf("toggle: OnVisit error at buttons %b: %w", p.Buttons, err)
	}
	return nil
}

// MinPresses returns the fewest distinct button presses that turn the
// all-off state into m's target. A zero target needs no presses.
// ErrUnreachable is returned when no subset of buttons works.
func MinPresses(m *machine.Machine, opts ...Option) (int, error) {
	if m == nil {
		return 0, ErrNilMachine
	}
	if _, err := collect(opts); err != nil {
		return 0, err
	}
	if m.Target() == 0 {
		return 0, nil
	}

	presses := 0
	found, err := Walk(m, m.Target(), func(p Press) bool {
		presses = p.Presses()
		return true
	}, opts...)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: target %b with %d buttons", ErrUnreachable, m.Target(), m.ButtonCount())
	}
	return presses, nil
}

// Subsets returns every non-empty button subset of m whose XOR equals
// target, in the order Walk reports them.
func Subsets(m *machine.Machine, target machine.State, opts ...Option) ([]machine.Mask, error) {
	var out []machine.Mask
	_, err := Walk(m, target, func(p Press) bool {
		out = append(out, p.Buttons)
		return false
	}, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// collect applies opts over DefaultOptions and returns the first option error.
func collect(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
