package machine

import (
	"slices"
	"strconv"
	"strings"
)

// Joltages is a per-switch budget. All arithmetic on it is exact and never
// produces negative entries: Sub reports failure instead.
type Joltages []int

// Clone returns an independent copy (nil stays nil).
func (j Joltages) Clone() Joltages { return slices.Clone(j) }

// Sub returns j - o slot by slot. ok is false, and the result nil, when any
// slot would go negative. Both vectors must have the same length.
func (j Joltages) Sub(o Joltages) (Joltages, bool) {
	out := make(Joltages, len(j))
	for i := range j {
		if out[i] = j[i] - o[i]; out[i] < 0 {
			return nil, false
		}
	}
	return out, true
}

// Half divides every slot by two, dropping the low bit.
func (j Joltages) Half() Joltages {
	out := make(Joltages, len(j))
	for i, v := range j {
		out[i] = v >> 1
	}
	return out
}

// IsZero reports whether every slot is zero.
func (j Joltages) IsZero() bool {
	for _, v := range j {
		if v != 0 {
			return false
		}
	}
	return true
}

// Parity maps each slot's low bit to the switch at the same index: the
// switch is on when the slot is odd.
func (j Joltages) Parity() State {
	var s State
	for i, v := range j {
		s |= State(v&1) << uint(i)
	}
	return s
}

// Max returns the largest slot, or 0 for an empty vector.
func (j Joltages) Max() int {
	if len(j) == 0 {
		return 0
	}
	return slices.Max(j)
}

// Key returns a canonical string form usable as a map key.
func (j Joltages) Key() string {
	var sb strings.Builder
	for i, v := range j {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
