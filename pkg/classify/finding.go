package classify

import "github.com/SamuelMarks/voidcaster/pkg/loc"

// MissingVoid reports a call whose non-void result is silently discarded.
// At is the point right before the call where a cast to void belongs.
type MissingVoid struct {
	File     string
	Function string
	At       loc.Location
}

// SuperfluousVoid reports a void-returning call needlessly wrapped in a
// cast to void. From and To span the cast's own tokens (the parentheses
// and the void keyword), not the wrapped call; To points at the first byte
// after the closing parenthesis.
type SuperfluousVoid struct {
	File     string
	Function string
	From, To loc.Location
}

// Sink receives findings in the order the walker emits them, which is the
// order the user is prompted in interactive mode. A sink may return an
// error to stop the traversal; the walker propagates it unchanged.
type Sink interface {
	MissingVoid(MissingVoid) error
	SuperfluousVoid(SuperfluousVoid) error
}
