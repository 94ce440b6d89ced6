package patch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/SamuelMarks/voidcaster/pkg/loc"
)

// Engine rewrites files according to a set of modifications. The zero value
// is ready to use.
type Engine struct {
	// BackupSuffix is appended to a rewritten file's path to form its
	// backup path. Defaults to "~".
	BackupSuffix string
}

// Apply groups the modifications by file, orders them within each file and
// rewrites every referenced file through a staging copy, leaving the
// original at its path plus the backup suffix. A pre-existing backup is
// silently overwritten.
//
// Failures are file-scoped: a file that cannot be rewritten is reported in
// the returned (joined) error and leaves its original untouched, while the
// remaining files are still attempted. An empty modification set writes
// nothing and creates no backups.
func (e *Engine) Apply(mods []Modification) error {
	if len(mods) == 0 {
		return nil
	}
	sortModifications(mods)

	var errs []error
	for start := 0; start < len(mods); {
		end := start
		for end < len(mods) && mods[end].File == mods[start].File {
			end++
		}
		if err := e.applyFile(mods[start].File, mods[start:end]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mods[start].File, err))
		}
		start = end
	}
	return errors.Join(errs...)
}

// sortModifications orders by file name, then by characteristic location.
// The sort is stable: modifications sharing a characteristic location apply
// in the order they were queued.
func sortModifications(mods []Modification) {
	sort.SliceStable(mods, func(i, j int) bool {
		if mods[i].File != mods[j].File {
			return mods[i].File < mods[j].File
		}
		return mods[i].CharacteristicLocation().Less(mods[j].CharacteristicLocation())
	})
}

// applyFile streams path through a staging file, applying mods in sorted
// order, then swaps the staging file in behind a backup of the original.
// On error the staging file is removed and the original left alone.
func (e *Engine) applyFile(path string, mods []Modification) (err error) {
	rf, err := os.Open(path)
	if err != nil {
		return err
	}
	defer rf.Close()

	wf, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".staging*")
	if err != nil {
		return err
	}
	staging := wf.Name()
	defer func() {
		if err != nil {
			wf.Close()
			os.Remove(staging)
		}
	}()

	bw := bufio.NewWriter(wf)
	if err = applyStream(bufio.NewReader(rf), bw, mods); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = wf.Close(); err != nil {
		return err
	}

	suffix := e.BackupSuffix
	if suffix == "" {
		suffix = "~"
	}
	if err = robustRename(path, path+suffix); err != nil {
		return err
	}
	return robustRename(staging, path)
}

// applyStream copies r to w, applying mods in their sorted order. All
// coordinates refer to the original content, so inserted text never
// advances the location cursor and removed spans advance it without being
// copied.
func applyStream(r *bufio.Reader, w *bufio.Writer, mods []Modification) error {
	cur := loc.Location{Line: 1, Col: 1}
	for _, m := range mods {
		var err error
		switch m.Op {
		case OpInsert:
			if cur, err = advance(r, w, cur, m.Where); err != nil {
				return err
			}
			if _, err = w.WriteString(m.Text); err != nil {
				return err
			}
		case OpRemove:
			if cur, err = advance(r, w, cur, m.From); err != nil {
				return err
			}
			if cur, err = advance(r, nil, cur, m.To); err != nil {
				return err
			}
		}
	}
	// the rest of the file, verbatim
	_, err := io.Copy(w, r)
	return err
}

// advance consumes bytes from r until cur reaches target, mirroring them
// into w unless w is nil. A line feed starts a new line and resets the
// column; every other byte advances the column. Exhausting r before
// reaching target is an error.
func advance(r *bufio.Reader, w *bufio.Writer, cur, target loc.Location) (loc.Location, error) {
	for cur.Less(target) {
		b, err := r.ReadByte()
		if err == io.EOF {
			return cur, fmt.Errorf("end of file reached before %s", target)
		}
		if err != nil {
			return cur, err
		}
		if w != nil {
			if err := w.WriteByte(b); err != nil {
				return cur, err
			}
		}
		if b == '\n' {
			cur.Line++
			cur.Col = 1
		} else {
			cur.Col++
		}
	}
	return cur, nil
}
