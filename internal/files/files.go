// Package files resolves command-line path arguments into the list of C
// source files to inspect.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Collect expands paths into concrete input files. Explicitly named files
// are taken as given; directories are walked recursively and contribute
// their ".c" files. excludeGlobs are doublestar patterns matched against
// the slash-separated path relative to the walked directory; matching files
// and directories are skipped. The result preserves the argument order,
// with each directory's files sorted.
func Collect(paths []string, excludeGlobs []string) ([]string, error) {
	var inputs []string
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			inputs = append(inputs, p)
			continue
		}
		found, err := collectDir(p, excludeGlobs)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, found...)
	}
	return inputs, nil
}

// collectDir walks dir for C source files, honoring the exclusion globs.
func collectDir(dir string, excludeGlobs []string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		excluded, err := matchAny(excludeGlobs, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if excluded {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".c") {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

// matchAny reports whether rel matches any of the patterns.
func matchAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("bad exclude glob %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
