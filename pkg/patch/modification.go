// Package patch queues accepted textual edits and applies them to the files
// they reference, rewriting each file through a staging copy and leaving a
// backup of the original.
package patch

import "github.com/SamuelMarks/voidcaster/pkg/loc"

// Op is the type of a modification.
type Op int

const (
	// OpInsert splices text in at a single location.
	OpInsert Op = iota
	// OpRemove deletes the span between two locations.
	OpRemove
)

// Modification is one accepted edit, anchored at coordinates of the
// original, unmodified file. Modifications are immutable once queued.
type Modification struct {
	// File names the file to modify.
	File string
	// Op selects between the insert and remove fields.
	Op Op

	// Where is the insertion point. Valid for OpInsert.
	Where loc.Location
	// Text is inserted verbatim at Where. Valid for OpInsert.
	Text string

	// From and To delimit the removed span: From is the first removed
	// byte's location, To the first retained one's. Valid for OpRemove.
	From, To loc.Location
}

// Insert builds an insertion of text at where.
func Insert(file string, where loc.Location, text string) Modification {
	return Modification{File: file, Op: OpInsert, Where: where, Text: text}
}

// Remove builds a removal of the span [from, to).
func Remove(file string, from, to loc.Location) Modification {
	return Modification{File: file, Op: OpRemove, From: from, To: to}
}

// CharacteristicLocation is the single location a modification is ordered
// by relative to others in the same file.
func (m Modification) CharacteristicLocation() loc.Location {
	if m.Op == OpRemove {
		return m.From
	}
	return m.Where
}

// Queue collects modifications during the scan phase. It is append-only
// while scanning and drained exactly once afterwards; a drained queue is
// never reused.
type Queue struct {
	mods []Modification
}

// Add appends a modification.
func (q *Queue) Add(m Modification) {
	q.mods = append(q.mods, m)
}

// Len returns the number of queued modifications.
func (q *Queue) Len() int { return len(q.mods) }

// Drain empties the queue and returns its contents in insertion order.
func (q *Queue) Drain() []Modification {
	mods := q.mods
	q.mods = nil
	return mods
}
