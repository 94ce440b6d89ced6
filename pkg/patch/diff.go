package patch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// RenderDiffs prints, per referenced file, a unified diff of the changes
// Apply would make. The modifications are applied to an in-memory copy;
// nothing on disk is touched and no backups are created.
func (e *Engine) RenderDiffs(w io.Writer, mods []Modification) error {
	if len(mods) == 0 {
		return nil
	}
	sortModifications(mods)

	for start := 0; start < len(mods); {
		end := start
		for end < len(mods) && mods[end].File == mods[start].File {
			end++
		}
		path := mods[start].File

		orig, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		bw := bufio.NewWriter(&buf)
		if err := applyStream(bufio.NewReader(bytes.NewReader(orig)), bw, mods[start:end]); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := bw.Flush(); err != nil {
			return err
		}

		edits := myers.ComputeEdits(span.URIFromPath(path), string(orig), buf.String())
		fmt.Fprint(w, gotextdiff.ToUnified(path, path, string(orig), edits))

		start = end
	}
	return nil
}
