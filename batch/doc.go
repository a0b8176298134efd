// Package batch solves many machines in parallel and sums their answers.
//
// Each machine is independent: its toggle and joltage searches own all of
// their state. Solve therefore runs one task per machine on a bounded
// errgroup and writes each Result into its own slot of a pre-sized slice;
// the totals are a plain reduction once every task has finished.
//
// Unreachable targets and undrainable budgets are governed by Policy:
//
//   - PolicySkip   the machine contributes 0 and is counted as unsolved.
//   - PolicyAbort  the first unsolved machine fails the batch with
//     ErrUnsolved (other tasks are cancelled).
//
// Hard failures (cancellation, expansion limits, invalid options) always
// fail the batch.
package batch
