package patch

import (
	"io"
	"os"
)

// robustRename renames oldpath to newpath, falling back to copy-then-delete
// when a direct rename is not possible, e.g. when the two paths live on
// different filesystems. The observable outcome is the same either way.
func robustRename(oldpath, newpath string) error {
	if err := os.Rename(oldpath, newpath); err == nil {
		return nil
	}

	in, err := os.Open(oldpath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(newpath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(newpath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(newpath)
		return err
	}
	return os.Remove(oldpath)
}
