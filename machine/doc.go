// Package machine provides the immutable model of a toggle-switch machine:
// a row of binary switches, a target switch configuration, a table of
// buttons (each flipping a fixed subset of switches) and an optional
// per-switch joltage budget.
//
// What
//
//   - State and Mask are fixed-width bit vectors (bit i = switch i).
//   - Machine.Apply presses a button: state XOR mask.
//   - Machine.ReduceToJoltageWidth narrows a machine to its joltage slots,
//     dropping buttons that no longer touch any slot.
//   - Machine.JoltageContribution / Contributions count how much a set of
//     pressed buttons drains from each joltage slot.
//   - Joltages offers the exact, non-negative vector arithmetic the
//     decomposition search needs (Sub, Half, Parity, IsZero, Key).
//   - Parse / ParseAll read the textual description; Machine.String
//     writes it back.
//
// Text format
//
//	[#.#] (0,2) (1) {3,1,2}
//
//	[...]  target state, one '#' (on) or '.' (off) per switch, left to right
//	(...)  a button: comma-separated 0-based switch indices
//	{...}  optional joltage budget, one non-negative integer per switch
//
// Invariants
//
//   - Width ≤ MaxWidth and ButtonCount ≤ MaxButtons (one bit per button in a
//     usage Mask).
//   - Target and every button mask fit inside Width.
//   - If present, len(Joltages) == Width and every entry is ≥ 0.
//   - A Machine never changes after construction; accessors return copies.
//
// Errors
//
//   - ErrWidth            width outside [0, MaxWidth].
//   - ErrTooManyButtons   more than MaxButtons buttons.
//   - ErrOutOfRange       target or button bits beyond Width.
//   - ErrJoltageLength    joltage vector length differs from Width.
//   - ErrNegativeJoltage  a joltage entry below zero.
//   - ErrMalformed        unparseable text; wraps the cause.
package machine
