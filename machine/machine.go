package machine

import (
	"fmt"
	"slices"
)

// New builds a Machine with the given switch width, target state, button
// masks and joltage budget. joltages may be nil for machines without one.
// The slices are copied; later changes by the caller do not leak in.
func New(width int, target State, buttons []Mask, joltages Joltages) (*Machine, error) {
	if width < 0 || width > MaxWidth {
		return nil, fmt.Errorf("%w: %d", ErrWidth, width)
	}
	if len(buttons) > MaxButtons {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyButtons, len(buttons), MaxButtons)
	}
	limit := widthMask(width)
	if uint32(target)&^limit != 0 {
		return nil, fmt.Errorf("%w: target %b exceeds width %d", ErrOutOfRange, target, width)
	}
	for i, b := range buttons {
		if uint32(b)&^limit != 0 {
			return nil, fmt.Errorf("%w: button %d mask %b exceeds width %d", ErrOutOfRange, i, b, width)
		}
	}
	if len(joltages) > 0 && len(joltages) != width {
		return nil, fmt.Errorf("%w: %d joltages for %d switches", ErrJoltageLength, len(joltages), width)
	}
	for i, j := range joltages {
		if j < 0 {
			return nil, fmt.Errorf("%w: slot %d = %d", ErrNegativeJoltage, i, j)
		}
	}

	return &Machine{
		width:    width,
		target:   target,
		buttons:  slices.Clone(buttons),
		joltages: joltages.Clone(),
	}, nil
}

// widthMask returns a mask with the low width bits set.
func widthMask(width int) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return (uint32(1) << uint(width)) - 1
}

// Width returns the number of switches.
func (m *Machine) Width() int { return m.width }

// Target returns the target switch state.
func (m *Machine) Target() State { return m.target }

// ButtonCount returns the number of buttons.
func (m *Machine) ButtonCount() int { return len(m.buttons) }

// Button returns the switch mask of button i.
func (m *Machine) Button(i int) Mask { return m.buttons[i] }

// Buttons returns a copy of all button masks in index order.
func (m *Machine) Buttons() []Mask { return slices.Clone(m.buttons) }

// HasJoltages reports whether the machine carries a joltage budget.
func (m *Machine) HasJoltages() bool { return len(m.joltages) > 0 }

// Joltages returns a copy of the joltage budget (nil when absent).
func (m *Machine) Joltages() Joltages { return m.joltages.Clone() }

// Apply presses button i once: the result is state XOR the button's mask.
// i must be in [0, ButtonCount).
func (m *Machine) Apply(state State, i int) State {
	return state ^ State(m.buttons[i])
}

// ReduceToJoltageWidth returns a machine whose width is the joltage vector's
// length, with the target and every button masked to that width and any
// button left empty by the masking removed. Machines without joltages are
// returned as is. The operation is idempotent and never widens a machine.
func (m *Machine) ReduceToJoltageWidth() *Machine {
	if len(m.joltages) == 0 {
		return m
	}
	limit := Mask(widthMask(len(m.joltages)))
	buttons := make([]Mask, 0, len(m.buttons))
	for _, b := range m.buttons {
		if b &= limit; b != 0 {
			buttons = append(buttons, b)
		}
	}

	return &Machine{
		width:    len(m.joltages),
		target:   m.target & State(limit),
		buttons:  buttons,
		joltages: m.joltages.Clone(),
	}
}

// JoltageContribution returns how many of the buttons in used touch slot.
// Each pressed button adds exactly one.
func (m *Machine) JoltageContribution(used Mask, slot int) int {
	n := 0
	for i, b := range m.buttons {
		if used.Has(i) && b.Has(slot) {
			n++
		}
	}
	return n
}

// Contributions returns JoltageContribution for every slot of the machine.
func (m *Machine) Contributions(used Mask) Joltages {
	out := make(Joltages, m.width)
	for i, b := range m.buttons {
		if !used.Has(i) {
			continue
		}
		for slot := 0; slot < m.width; slot++ {
			if b.Has(slot) {
				out[slot]++
			}
		}
	}
	return out
}

// Equal reports whether two machines describe the same puzzle.
func (m *Machine) Equal(o *Machine) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.width == o.width &&
		m.target == o.target &&
		slices.Equal(m.buttons, o.buttons) &&
		slices.Equal(m.joltages, o.joltages)
}
