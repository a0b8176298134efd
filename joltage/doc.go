// Package joltage finds the fewest total button presses that drain a
// machine's joltage budget exactly to zero.
//
// What
//
//	Every press of a button adds one to each joltage slot the button
//	touches; a slot's budget must be consumed exactly. Press counts can be
//	large, so the search works on the binary expansion of the budget, least
//	significant bit first:
//
//	  1. The low bit of every residual slot gives a parity target state.
//	  2. Each button is pressed an odd or even number of times; the odd ones
//	     form a subset whose XOR equals the parity target. toggle.Walk lists
//	     all such subsets (not only the smallest, since a larger subset now
//	     can make a deeper level cheaper).
//	  3. A subset's contribution is subtracted from the residual. A negative
//	     slot discards the subset; an all-zero result is a candidate answer.
//	  4. Otherwise the (now even) residual is halved and the next level is
//	     explored, where one press stands for 2^level real presses.
//	  5. When the parity target is zero, pressing nothing at this level and
//	     halving directly is explored as well.
//
//	The recursion is expressed as a FIFO worklist of
//	(accumulated presses, level, residual) entries.
//
// Memoization
//
//   - Subsets per parity target are computed once per solve.
//   - An entry whose (residual, level) was already expanded with no more
//     accumulated presses is skipped: both would finish identically.
//   - Entries whose accumulated presses already reach the best candidate are
//     pruned.
//
// Termination
//
//	Each level at least halves every slot, so a residual reaches zero after
//	bitlen(max joltage) levels. MaxLevels (default bitlen(max)+1) caps the
//	depth anyway; if the cap cuts any branch that could still beat the best
//	candidate, ErrNonConvergent is returned instead of an unproven answer.
//
// Usage
//
//	res, err := joltage.Solve(m)
//	switch {
//	case errors.Is(err, joltage.ErrNoSolution):
//		// budget cannot be drained exactly (ErrNonConvergent included)
//	case err != nil:
//		// invalid machine or options, cancellation
//	default:
//		fmt.Println(res.Presses, res.Counts)
//	}
//
// Errors
//
//   - ErrNilMachine       if the machine pointer is nil.
//   - ErrNoJoltages       if the machine has no joltage budget.
//   - ErrNoSolution       if no press combination drains the budget.
//   - ErrNonConvergent    if MaxLevels cut a live branch (is ErrNoSolution).
//   - ErrOptionViolation  for invalid options.
//   - toggle errors (ErrExpansionLimit) and ctx.Err() are propagated.
package joltage
