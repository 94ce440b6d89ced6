// Package interact implements the interactive finding sink: it shows each
// proposed fix in context, asks for a yes/no decision and queues accepted
// fixes as modifications for the patch engine.
package interact

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/SamuelMarks/voidcaster/pkg/classify"
	"github.com/SamuelMarks/voidcaster/pkg/loc"
	"github.com/SamuelMarks/voidcaster/pkg/patch"
)

// CastText is the token sequence inserted to fix a missing cast.
const CastText = "(void)"

// ErrEndOfInput reports that the prompt stream was exhausted. The caller is
// expected to terminate cleanly without applying any queued modifications.
var ErrEndOfInput = errors.New("end of input on prompt stream")

// Collector is the interactive classify.Sink. Prompts and previews go to
// Out; decisions are read from In. One line of input is consumed per
// finding.
type Collector struct {
	queue *patch.Queue
	in    *bufio.Reader
	out   io.Writer
}

// NewCollector creates a Collector queueing accepted fixes into q.
func NewCollector(q *patch.Queue, in io.Reader, out io.Writer) *Collector {
	return &Collector{queue: q, in: bufio.NewReader(in), out: out}
}

// MissingVoid previews the insertion of "(void)" before the call and, on
// acceptance, queues it.
func (c *Collector) MissingVoid(f classify.MissingVoid) error {
	line, err := readLines(f.File, f.At.Line, 1)
	if err != nil {
		// degraded preview; the prompt still works
		line = ""
	}
	cut := int(f.At.Col) - 1
	if cut < 0 || cut > len(line) {
		cut = len(line)
	}
	fixed := line[:cut] + color.GreenString(CastText) + line[cut:]

	fmt.Fprintf(c.out,
		"\nFile %s, line %d:\nMissing cast to void when calling function '%s'.\nThe line, currently:\n%s\nThe line, after its modification:\n%s\nApply fix? (y/n) ",
		f.File, f.At.Line, f.Function, line, fixed)

	ok, err := c.confirm()
	if err != nil {
		return err
	}
	if ok {
		c.queue.Add(patch.Insert(f.File, f.At, CastText))
	}
	return nil
}

// SuperfluousVoid previews the removal of the cast tokens and, on
// acceptance, queues it.
func (c *Collector) SuperfluousVoid(f classify.SuperfluousVoid) error {
	count := f.To.Line - f.From.Line + 1
	lines, err := readLines(f.File, f.From.Line, count)
	if err != nil {
		lines = ""
	}
	base := loc.Location{Line: f.From.Line, Col: 1}
	from := offsetIn(lines, base, f.From)
	to := offsetIn(lines, base, f.To)
	fixed := lines[:from] + lines[to:]
	current := lines[:from] + color.RedString(lines[from:to]) + lines[to:]

	fmt.Fprintf(c.out,
		"\nFile %s, lines %d through %d:\nSuperfluous cast to void when calling function '%s'.\nThe lines, currently:\n%s\nThe lines, after their modification:\n%s\nApply fix? (y/n) ",
		f.File, f.From.Line, f.To.Line, f.Function, current, fixed)

	ok, err := c.confirm()
	if err != nil {
		return err
	}
	if ok {
		c.queue.Add(patch.Remove(f.File, f.From, f.To))
	}
	return nil
}

// confirm reads yes/no decisions until one is given. Only a single y, Y, n
// or N followed by a line terminator is accepted; anything else re-prompts.
// End of input yields ErrEndOfInput.
func (c *Collector) confirm() (bool, error) {
	for {
		resp, err := c.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, ErrEndOfInput
			}
			return false, err
		}
		resp = strings.TrimSuffix(resp, "\n")
		resp = strings.TrimSuffix(resp, "\r")
		if len(resp) == 1 {
			switch resp[0] {
			case 'y', 'Y':
				return true, nil
			case 'n', 'N':
				return false, nil
			}
		}
		fmt.Fprint(c.out, "Please answer y (yes) or n (no): ")
	}
}
