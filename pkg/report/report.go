// Package report implements the warn-only finding sink and collects run
// statistics for structured output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/SamuelMarks/voidcaster/pkg/classify"
)

// Data represents the structure of the JSON summary output.
type Data struct {
	// FilesScanned is the number of files the classifier ran over.
	FilesScanned int `json:"files_scanned"`
	// MissingVoid is the count of calls whose result is discarded without a
	// cast to void.
	MissingVoid int `json:"missing_void"`
	// SuperfluousVoid is the count of void calls needlessly cast to void.
	SuperfluousVoid int `json:"superfluous_void"`
	// UnjudgeableCalls is the count of calls that could not be checked.
	UnjudgeableCalls int `json:"unjudgeable_calls"`
}

// Reporter prints warn-mode diagnostics to the error stream and records
// that suggestions occurred. It implements classify.Sink and is safe for
// concurrent use.
type Reporter struct {
	mu        sync.Mutex
	out       io.Writer
	data      Data
	suggested bool
}

// New creates a Reporter writing diagnostics to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// MissingVoid prints the missing-cast diagnostic and marks that a
// suggestion was given.
func (r *Reporter) MissingVoid(f classify.MissingVoid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.MissingVoid++
	r.suggested = true
	_, err := fmt.Fprintf(r.out, "%s:%s: Missing cast to void when calling function %s.\n",
		f.File, f.At, f.Function)
	return err
}

// SuperfluousVoid prints the pointless-cast diagnostic and marks that a
// suggestion was given. The reported location is the cast's start.
func (r *Reporter) SuperfluousVoid(f classify.SuperfluousVoid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.SuperfluousVoid++
	r.suggested = true
	_, err := fmt.Fprintf(r.out, "%s:%s: Pointless cast to void when calling function %s.\n",
		f.File, f.From, f.Function)
	return err
}

// IncFile records that one more file was scanned.
func (r *Reporter) IncFile() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.FilesScanned++
}

// IncUnjudgeable records a call that could not be checked.
func (r *Reporter) IncUnjudgeable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.UnjudgeableCalls++
}

// Suggested reports whether any finding was emitted through this reporter.
// The extended-status exit code is derived from it.
func (r *Reporter) Suggested() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suggested
}

// WriteJSON serializes the collected statistics to w as indented JSON.
func (r *Reporter) WriteJSON(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.data)
}

// GetData returns a copy of the collected statistics.
func (r *Reporter) GetData() Data {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}
