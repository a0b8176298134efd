package batch_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/switchyard/batch"
	"github.com/katalvlaran/switchyard/joltage"
	"github.com/katalvlaran/switchyard/machine"
	"github.com/katalvlaran/switchyard/toggle"
)

const sample = `[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}
[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}
`

func parseAll(t testing.TB, input string) []*machine.Machine {
	t.Helper()
	ms, err := machine.ParseAll(strings.NewReader(input))
	require.NoError(t, err)
	return ms
}

// TestSolve_Sample sums the three sample machines.
func TestSolve_Sample(t *testing.T) {
	ms := parseAll(t, sample)
	for _, workers := range []int{1, 2, 8} {
		rep, err := batch.Solve(context.Background(), ms, batch.WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, 7, rep.Part1)
		assert.Equal(t, 33, rep.Part2)
		assert.Zero(t, rep.Unsolved1)
		assert.Zero(t, rep.Unsolved2)
		require.Len(t, rep.Machines, 3)
		for i, r := range rep.Machines {
			assert.Equal(t, i, r.Index, "results keep input order")
		}
	}
}

// TestSolve_MatchesIndividualSolves checks the reduction against sequential calls.
func TestSolve_MatchesIndividualSolves(t *testing.T) {
	ms := parseAll(t, sample+"[#.] (0) (1) {1,0}\n[##] (0,1) {2,2}\n")
	rep, err := batch.Solve(context.Background(), ms, batch.WithCache(false))
	require.NoError(t, err)

	want1, want2 := 0, 0
	for i, m := range ms {
		p1, err := toggle.MinPresses(m)
		require.NoError(t, err)
		p2, err := joltage.MinPresses(m)
		require.NoError(t, err)
		assert.Equal(t, p1, rep.Machines[i].Part1)
		assert.Equal(t, p2, rep.Machines[i].Part2)
		want1 += p1
		want2 += p2
	}
	assert.Equal(t, want1, rep.Part1)
	assert.Equal(t, want2, rep.Part2)
}

// TestSolve_PolicySkip counts unsolved machines and adds nothing for them.
func TestSolve_PolicySkip(t *testing.T) {
	ms := parseAll(t, "[#.] (0) (1) {1,0}\n[#] {1}\n[##] (0,1)\n")
	rep, err := batch.Solve(context.Background(), ms)
	require.NoError(t, err)

	assert.Equal(t, 1+1, rep.Part1)
	assert.Equal(t, 1, rep.Part2)
	assert.Equal(t, 1, rep.Unsolved1)
	assert.Equal(t, 1, rep.Unsolved2)
	assert.Equal(t, 1, rep.Skipped2)

	r := rep.Machines[1]
	assert.Equal(t, batch.NoSolution, r.Part1)
	assert.ErrorIs(t, r.Err1, toggle.ErrUnreachable)
	assert.ErrorIs(t, r.Err2, joltage.ErrNoSolution)
	assert.False(t, r.Skipped2)

	r = rep.Machines[2]
	assert.True(t, r.Skipped2)
	assert.NoError(t, r.Err2)
	assert.Equal(t, batch.NoSolution, r.Part2)
}

// TestSolve_WithoutJoltages skips part 2 for lines that carry no budget,
// even under PolicyAbort.
func TestSolve_WithoutJoltages(t *testing.T) {
	ms := parseAll(t, "[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1)\n[#.] (0) (1)\n")
	rep, err := batch.Solve(context.Background(), ms, batch.WithPolicy(batch.PolicyAbort))
	require.NoError(t, err)

	assert.Equal(t, 2+1, rep.Part1)
	assert.Zero(t, rep.Part2)
	assert.Zero(t, rep.Unsolved2)
	assert.Equal(t, 2, rep.Skipped2)
}

// TestSolve_PolicyAbort fails on the first unsolved machine.
func TestSolve_PolicyAbort(t *testing.T) {
	ms := parseAll(t, "[#.] (0) (1) {1,0}\n[#] {1}\n")
	_, err := batch.Solve(context.Background(), ms, batch.WithPolicy(batch.PolicyAbort))
	assert.ErrorIs(t, err, batch.ErrUnsolved)
	assert.ErrorIs(t, err, toggle.ErrUnreachable)
}

// TestSolve_Parts disables one search at a time.
func TestSolve_Parts(t *testing.T) {
	ms := parseAll(t, sample)

	rep, err := batch.Solve(context.Background(), ms, batch.WithParts(true, false))
	require.NoError(t, err)
	assert.Equal(t, 7, rep.Part1)
	assert.Zero(t, rep.Part2)
	assert.Equal(t, batch.NoSolution, rep.Machines[0].Part2)

	rep, err = batch.Solve(context.Background(), ms, batch.WithParts(false, true))
	require.NoError(t, err)
	assert.Zero(t, rep.Part1)
	assert.Equal(t, 33, rep.Part2)
}

// TestSolve_Errors covers invalid input, options and hard failures.
func TestSolve_Errors(t *testing.T) {
	_, err := batch.Solve(context.Background(), []*machine.Machine{nil})
	assert.ErrorIs(t, err, batch.ErrNilMachine)

	_, err = batch.Solve(context.Background(), nil, batch.WithWorkers(-1))
	assert.ErrorIs(t, err, batch.ErrOptionViolation)
	_, err = batch.Solve(context.Background(), nil, batch.WithPolicy(batch.Policy(9)))
	assert.ErrorIs(t, err, batch.ErrOptionViolation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = batch.Solve(ctx, parseAll(t, sample))
	assert.ErrorIs(t, err, context.Canceled, "cancellation is never skipped")

	_, err = batch.Solve(context.Background(), parseAll(t, sample), batch.WithMaxExpansions(2))
	assert.ErrorIs(t, err, toggle.ErrExpansionLimit)
}

// TestSolve_Empty returns a zero report.
func TestSolve_Empty(t *testing.T) {
	rep, err := batch.Solve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &batch.Report{Machines: []batch.Result{}}, rep)
}

// TestSolve_Metrics records one observation per machine and part.
func TestSolve_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	mt := batch.NewMetrics(reg)
	ms := parseAll(t, sample+"[#] {1}\n[#] (0)\n")

	_, err := batch.Solve(context.Background(), ms, batch.WithMetrics(mt))
	require.NoError(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(mt.MachinesTotal.WithLabelValues("1", "solved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mt.MachinesTotal.WithLabelValues("1", "unsolved")))
	assert.Equal(t, 3.0, testutil.ToFloat64(mt.MachinesTotal.WithLabelValues("2", "solved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mt.MachinesTotal.WithLabelValues("2", "unsolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mt.MachinesTotal.WithLabelValues("2", "skipped")))
	assert.Equal(t, 2, testutil.CollectAndCount(mt.SolveDurationSeconds))
}

// TestSolve_Logging emits a summary line.
func TestSolve_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	_, err := batch.Solve(context.Background(), parseAll(t, sample), batch.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "batch solved")
	assert.Contains(t, buf.String(), "part2=33")
}

// TestParsePolicy maps names both ways.
func TestParsePolicy(t *testing.T) {
	for _, p := range []batch.Policy{batch.PolicySkip, batch.PolicyAbort} {
		got, err := batch.ParsePolicy(strings.ToUpper(p.String()))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := batch.ParsePolicy("retry")
	assert.ErrorIs(t, err, batch.ErrOptionViolation)
}
