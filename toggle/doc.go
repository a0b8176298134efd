// Package toggle finds the fewest button presses that drive a machine's
// switches from all-off to a target state.
//
// What
//
//   - Walk runs a subset breadth-first search over press records
//     (resulting state, set of buttons used) and reports every non-empty
//     button subset whose XOR equals a target, smallest subsets first.
//   - MinPresses stops at the first such subset and returns its size.
//
// Why subsets and not sequences
//
//	Pressing a button is XOR with its mask, so order does not matter and a
//	second press of the same button cancels the first. Every reachable state
//	is therefore reached by some set of distinct buttons. The walk only
//	extends a record with buttons whose index is strictly greater than the
//	highest one already used, so each subset is generated exactly once:
//	2^n records instead of n! paths.
//
// Determinism
//
//	Records leave the queue in non-decreasing size; within a size, subsets
//	appear in lexicographic order of their sorted button indices.
//
// Complexity (n = ButtonCount)
//
//   - Time:   O(2^n) records, one XOR each.
//   - Memory: O(2^n) for the queue in the worst case.
//
// Usage
//
//	presses, err := toggle.MinPresses(m)
//	if errors.Is(err, toggle.ErrUnreachable) {
//		// no subset of buttons produces the target
//	}
//
//	// every subset reaching a state, with a cap on work:
//	_, err = toggle.Walk(m, target, func(p toggle.Press) bool {
//		fmt.Println(p.Buttons, p.Presses())
//		return false // keep going
//	}, toggle.WithMaxExpansions(1<<16))
//
// Errors
//
//   - ErrNilMachine       if the machine pointer is nil.
//   - ErrUnreachable      if no subset reaches the target (MinPresses only).
//   - ErrOptionViolation  for invalid options (e.g. negative MaxExpansions).
//   - ErrExpansionLimit   when MaxExpansions records were generated.
//   - ctx.Err()           on cancellation; wrapped OnVisit errors.
package toggle
