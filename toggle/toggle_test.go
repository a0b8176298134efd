package toggle_test

import (
	"context"
	"errors"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/katalvlaran/switchyard/machine"
	"github.com/katalvlaran/switchyard/toggle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t testing.TB, line string) *machine.Machine {
	t.Helper()
	m, err := machine.Parse(line)
	require.NoError(t, err)
	return m
}

// TestMinPresses_Errors verifies invalid inputs and options are rejected.
func TestMinPresses_Errors(t *testing.T) {
	_, err := toggle.MinPresses(nil)
	assert.ErrorIs(t, err, toggle.ErrNilMachine)

	_, err = toggle.Walk(nil, 0, func(toggle.Press) bool { return true })
	assert.ErrorIs(t, err, toggle.ErrNilMachine)

	m := mustParse(t, "[#] (0)")
	_, err = toggle.MinPresses(m, toggle.WithMaxExpansions(-1))
	assert.ErrorIs(t, err, toggle.ErrOptionViolation)

	// zero target returns early but options are still checked
	_, err = toggle.MinPresses(mustParse(t, "[..] (0)"), toggle.WithMaxExpansions(-1))
	assert.ErrorIs(t, err, toggle.ErrOptionViolation)
}

// TestMinPresses_NoButtons reports unreachable for any non-zero target.
func TestMinPresses_NoButtons(t *testing.T) {
	for _, line := range []string{"[#]", "[.#.]", "[####]"} {
		_, err := toggle.MinPresses(mustParse(t, line))
		assert.ErrorIs(t, err, toggle.ErrUnreachable, line)
	}
}

// TestMinPresses_ZeroTarget needs no presses, with or without buttons.
func TestMinPresses_ZeroTarget(t *testing.T) {
	for _, line := range []string{"[...]", "[..] (0) (1) (0,1)", "[]"} {
		got, err := toggle.MinPresses(mustParse(t, line))
		require.NoError(t, err, line)
		assert.Equal(t, 0, got, line)
	}
}

// TestMinPresses_Scenarios checks hand-computed machines.
func TestMinPresses_Scenarios(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"[#.] (0) (1) {1,0}", 1},
		{"[##] (0,1) {2,2}", 1},
		{"[##] (0) (1)", 2},
		{"[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}", 2},
		{"[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}", 3},
		{"[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}", 2},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := toggle.MinPresses(mustParse(t, tc.line))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// bruteForce returns the smallest subset size reaching target, or -1.
func bruteForce(m *machine.Machine) int {
	best := -1
	n := m.ButtonCount()
	for set := 0; set < 1<<n; set++ {
		var s machine.State
		for i := 0; i < n; i++ {
			if set&(1<<i) != 0 {
				s = m.Apply(s, i)
			}
		}
		if s != m.Target() {
			continue
		}
		if c := bits.OnesCount(uint(set)); best < 0 || c < best {
			best = c
		}
	}
	return best
}

// randomMachine builds a machine with up to 6 switches and 6 buttons.
func randomMachine(t testing.TB, rnd *rand.Rand) *machine.Machine {
	width := 1 + rnd.Intn(6)
	limit := 1 << width
	buttons := make([]machine.Mask, rnd.Intn(7))
	for i := range buttons {
		buttons[i] = machine.Mask(rnd.Intn(limit))
	}
	m, err := machine.New(width, machine.State(rnd.Intn(limit)), buttons, nil)
	require.NoError(t, err)
	return m
}

// TestMinPresses_MatchesExhaustiveEnumeration compares against brute force
// on random small machines: no smaller subset may reach the target.
func TestMinPresses_MatchesExhaustiveEnumeration(t *testing.T) {
	rnd := rand.New(rand.NewSource(10))
	for iter := 0; iter < 500; iter++ {
		m := randomMachine(t, rnd)
		want := bruteForce(m)
		got, err := toggle.MinPresses(m)
		if want < 0 {
			assert.ErrorIs(t, err, toggle.ErrUnreachable, m.String())
			continue
		}
		require.NoError(t, err, m.String())
		assert.Equal(t, want, got, m.String())
	}
}

// TestWalk_VisitsEachSubsetOnce checks 2^n-1 generated records, all distinct,
// in non-decreasing size order.
func TestWalk_VisitsEachSubsetOnce(t *testing.T) {
	m := mustParse(t, "[....] (0) (1) (2) (3) (0,1) (2,3)")
	seen := map[machine.Mask]bool{}
	last := 0
	_, err := toggle.Walk(m, 0b1111, func(toggle.Press) bool { return false },
		toggle.WithOnVisit(func(p toggle.Press) error {
			assert.False(t, seen[p.Buttons], "subset %b visited twice", p.Buttons)
			seen[p.Buttons] = true
			assert.GreaterOrEqual(t, p.Presses(), last)
			last = p.Presses()
			return nil
		}))
	require.NoError(t, err)
	assert.Len(t, seen, 1<<6-1)
}

// TestSubsets lists every subset reaching the target, smallest first.
func TestSubsets(t *testing.T) {
	// b0={0} b1={1} b2={0,1}
	m := mustParse(t, "[##] (0) (1) (0,1)")

	got, err := toggle.Subsets(m, 0b11)
	require.NoError(t, err)
	assert.Equal(t, []machine.Mask{0b100, 0b011}, got)

	// target zero: the empty subset is excluded, {b0,b1,b2} qualifies
	got, err = toggle.Subsets(m, 0)
	require.NoError(t, err)
	assert.Equal(t, []machine.Mask{0b111}, got)

	for _, b := range got {
		var s machine.State
		for i := 0; i < m.ButtonCount(); i++ {
			if b.Has(i) {
				s = m.Apply(s, i)
			}
		}
		assert.Equal(t, machine.State(0), s)
	}
}

// TestWalk_ExpansionLimit aborts once the cap is exceeded.
func TestWalk_ExpansionLimit(t *testing.T) {
	m := mustParse(t, "[#####] (0) (1) (2) (3) (4) (0,1) (1,2)")
	_, err := toggle.Subsets(m, 0b11111, toggle.WithMaxExpansions(10))
	assert.ErrorIs(t, err, toggle.ErrExpansionLimit)

	got, err := toggle.MinPresses(m, toggle.WithMaxExpansions(1<<7))
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

// TestWalk_ContextAndHookErrors propagates cancellation and hook failures.
func TestWalk_ContextAndHookErrors(t *testing.T) {
	m := mustParse(t, "[###] (0) (1) (2)")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := toggle.MinPresses(m, toggle.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	boom := errors.New("boom")
	_, err = toggle.MinPresses(m, toggle.WithOnVisit(func(toggle.Press) error { return boom }))
	assert.ErrorIs(t, err, boom)
}
