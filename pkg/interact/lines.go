package interact

import (
	"fmt"
	"os"
	"strings"

	"github.com/SamuelMarks/voidcaster/pkg/loc"
)

// readLines returns count consecutive lines of the named file starting at
// the 1-based line first. Interior line feeds are preserved; the terminator
// of the last requested line is not part of the result.
func readLines(path string, first, count uint32) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := string(src)

	start := 0
	for line := uint32(1); line < first; line++ {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return "", fmt.Errorf("line %d past end of source file %s", first, path)
		}
		start += nl + 1
	}
	if start >= len(text) && first > 1 {
		return "", fmt.Errorf("line %d past end of source file %s", first, path)
	}

	end := start
	for line := uint32(0); line < count; line++ {
		nl := strings.IndexByte(text[end:], '\n')
		if nl < 0 {
			end = len(text)
			break
		}
		end += nl
		if line+1 < count {
			end++
		}
	}
	return text[start:end], nil
}

// offsetIn returns the byte index of target within text, where text's first
// byte sits at base. Targets outside the text clamp to its length.
func offsetIn(text string, base loc.Location, target loc.Location) int {
	cur := base
	for i := 0; i < len(text); i++ {
		if cur.Compare(target) >= 0 {
			return i
		}
		if text[i] == '\n' {
			cur.Line++
			cur.Col = 1
		} else {
			cur.Col++
		}
	}
	return len(text)
}
