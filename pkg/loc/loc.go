// Package loc provides source location value types shared by the front end,
// the classifier and the patch engine. Locations are meaningful only within
// one named file; comparing locations from different files is undefined.
package loc

import "fmt"

// Location identifies a point in a source file. Both fields are 1-based;
// the zero value is not a valid location.
type Location struct {
	// Line is the 1-based line number.
	Line uint32
	// Col is the 1-based byte offset within the line.
	Col uint32
}

// Compare orders two locations lexicographically (line, then column).
// It returns a negative number if l is ordered before o, zero if they are
// equal, and a positive number if l is ordered after o.
func (l Location) Compare(o Location) int {
	switch {
	case l.Line < o.Line:
		return -1
	case l.Line > o.Line:
		return 1
	case l.Col < o.Col:
		return -1
	case l.Col > o.Col:
		return 1
	default:
		return 0
	}
}

// Less reports whether l is ordered strictly before o.
func (l Location) Less(o Location) bool {
	return l.Compare(o) < 0
}

// String renders the location in the conventional "line:col" form.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Range is a span of source text. Start points at the first byte of the
// span; End points at the first byte after it, so an empty range has
// Start == End.
type Range struct {
	Start Location
	End   Location
}

// String renders the range as "start-end".
func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
