package machine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// descriptionLexer tokenizes one machine line.
var descriptionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Light", Pattern: `[#.]`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[\[\](){},]`},
})

// description is the grammar of a machine line, e.g. [#.#] (0,2) (1) {3,1,2}.
type description struct {
	Lights   []string      `parser:"\"[\" @Light* \"]\""`
	Buttons  []*buttonList `parser:"@@*"`
	Joltages *joltageList  `parser:"@@?"`
}

type buttonList struct {
	Switches []int `parser:"\"(\" ( @Int ( \",\" @Int )* )? \")\""`
}

type joltageList struct {
	Values []int `parser:"\"{\" ( @Int ( \",\" @Int )* )? \"}\""`
}

var descriptionParser = participle.MustBuild[description](
	participle.Lexer(descriptionLexer),
	participle.Elide("Whitespace"),
)

// Parse reads a single machine description. Any syntax or consistency
// problem is reported as ErrMalformed wrapping the underlying cause.
func Parse(line string) (*Machine, error) {
	d, err := descriptionParser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	m, err := d.machine()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return m, nil
}

// ParseAll reads one machine per non-blank line of r.
// Errors carry the 1-based line number.
func ParseAll(r io.Reader) ([]*Machine, error) {
	var machines []*Machine
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		m, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		machines = append(machines, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("machine: reading input: %w", err)
	}
	return machines, nil
}

// machine converts the parsed form into a validated Machine.
func (d *description) machine() (*Machine, error) {
	width := len(d.Lights)
	if width > MaxWidth {
		return nil, fmt.Errorf("%w: %d", ErrWidth, width)
	}
	var target State
	for i, l := range d.Lights {
		if l == "#" {
			target |= 1 << uint(i)
		}
	}

	buttons := make([]Mask, 0, len(d.Buttons))
	for bi, b := range d.Buttons {
		var mask Mask
		for _, s := range b.Switches {
			if s >= width {
				return nil, fmt.Errorf("%w: button %d references switch %d of %d", ErrOutOfRange, bi, s, width)
			}
			mask |= 1 << uint(s)
		}
		buttons = append(buttons, mask)
	}

	var joltages Joltages
	if d.Joltages != nil {
		if len(d.Joltages.Values) == 0 {
			return nil, errors.New("empty joltage list")
		}
		joltages = Joltages(d.Joltages.Values)
	}

	return New(width, target, buttons, joltages)
}
