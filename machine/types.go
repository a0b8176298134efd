package machine

import "errors"

const (
	// MaxWidth is the largest number of switches a State can hold.
	MaxWidth = 32
	// MaxButtons is the largest number of buttons a usage Mask can track.
	MaxButtons = 32
)

// Sentinel errors for machine construction and parsing.
var (
	// ErrWidth is returned when the switch count is negative or above MaxWidth.
	ErrWidth = errors.New("machine: switch width out of range")

	// ErrTooManyButtons is returned when more than MaxButtons buttons are given.
	ErrTooManyButtons = errors.New("machine: too many buttons")

	// ErrOutOfRange is returned when a target or button bit lies beyond the width.
	ErrOutOfRange = errors.New("machine: switch index out of range")

	// ErrJoltageLength is returned when a joltage vector does not have one
	// entry per switch.
	ErrJoltageLength = errors.New("machine: joltage count does not match switch count")

	// ErrNegativeJoltage is returned for a joltage entry below zero.
	ErrNegativeJoltage = errors.New("machine: negative joltage")

	// ErrMalformed is returned when a machine description cannot be parsed.
	ErrMalformed = errors.New("machine: malformed description")
)

// State is the on/off status of every switch; bit i is switch i.
type State uint32

// Mask is a set of bit positions. A button's Mask lists the switches it
// flips; a usage Mask lists which buttons (by index) have been pressed.
type Mask uint32

// Has reports whether bit i is set.
func (m Mask) Has(i int) bool { return m&(1<<uint(i)) != 0 }

// Machine is one immutable puzzle instance.
type Machine struct {
	width    int
	target   State
	buttons  []Mask
	joltages Joltages
}
