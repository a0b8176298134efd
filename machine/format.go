package machine

import (
	"strconv"
	"strings"
)

// String renders the machine in the text format accepted by Parse.
func (m *Machine) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < m.width; i++ {
		if m.target&(1<<uint(i)) != 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte(']')

	for _, b := range m.buttons {
		sb.WriteString(" (")
		first := true
		for i := 0; i < m.width; i++ {
			if !b.Has(i) {
				continue
			}
			if !first {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(i))
			first = false
		}
		sb.WriteByte(')')
	}

	if len(m.joltages) > 0 {
		sb.WriteString(" {")
		sb.WriteString(m.joltages.Key())
		sb.WriteByte('}')
	}
	return sb.String()
}
