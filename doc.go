// Package switchyard solves toggle-switch machines: rows of binary
// switches driven by buttons that each flip a fixed subset of them.
//
// Two questions are answered per machine:
//
//   - the fewest button presses that turn an all-off row into a target
//     pattern (subset breadth-first search, package toggle);
//   - the fewest presses that drain a per-switch joltage budget to exactly
//     zero, solved level by level on the budget's binary expansion
//     (package joltage).
//
// Layout:
//
//	machine/  immutable Machine model, joltage vectors, text parse/format
//	toggle/   subset-BFS: every button subset visited once, smallest first
//	joltage/  halving worklist with memoized parity subsets and residuals
//	cache/    generic per-solve memo table with hit/miss stats
//	batch/    parallel map over machines, skip/abort policy, metrics
//	config/   YAML settings
//	logging/  slog logger construction
//	cmd/switchyard command line front end
//
// Quick example:
//
//	m, _ := machine.Parse("[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}")
//	p1, _ := toggle.MinPresses(m)  // 2
//	p2, _ := joltage.MinPresses(m) // 10
//
//	go get github.com/katalvlaran/switchyard
package switchyard
