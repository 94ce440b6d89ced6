// Package classify walks a parsed C translation unit and decides, for every
// call expression, whether its result is silently discarded (a missing cast
// to void), redundantly voided (a superfluous cast to void), or neither.
package classify

import (
	"github.com/SamuelMarks/voidcaster/pkg/frontend"
	"github.com/SamuelMarks/voidcaster/pkg/loc"
)

// state is carried down the recursion by value; siblings never observe each
// other's changes.
type state struct {
	depth             int
	voidCastAbove     bool
	compoundStmtAbove bool
	// castExtent is the most recent enclosing void cast's token extent.
	// Valid iff voidCastAbove.
	castExtent loc.Range
}

// WarnFunc receives side-channel warnings about calls that cannot be
// judged: the callee could not be resolved, or its declaration carries no
// prototype.
type WarnFunc func(file string, at loc.Location, function string)

// Walker traverses trees and reports findings to its sink.
type Walker struct {
	// Sink receives the findings. Required.
	Sink Sink
	// Warnf receives unjudgeable-call warnings. Optional.
	Warnf WarnFunc
}

// Walk traverses the tree in document order. Findings are emitted as they
// are discovered; a sink error aborts the traversal and is returned
// unchanged.
func (w *Walker) Walk(t *frontend.Tree) error {
	return w.visit(t, t.Root(), state{})
}

func (w *Walker) visit(t *frontend.Tree, cur frontend.Cursor, st state) error {
	child := state{depth: st.depth + 1}

	switch cur.Kind() {
	case frontend.KindCompoundStmt, frontend.KindCaseStmt:
		// the value of anything sitting directly in a statement list is
		// discarded
		child.compoundStmtAbove = true
	case frontend.KindExprStmt:
		// the grammar wraps statement-level expressions in an extra node
		// that neither consumes nor discards anything on its own; pass the
		// inherited state through
		child.voidCastAbove = st.voidCastAbove
		child.compoundStmtAbove = st.compoundStmtAbove
		child.castExtent = st.castExtent
	case frontend.KindVoidCast:
		if ext, ok := cur.CastExtent(); ok {
			child.voidCastAbove = true
			child.castExtent = ext
		}
	case frontend.KindCall:
		if err := w.call(t, cur, st); err != nil {
			return err
		}
	case frontend.KindBinary:
		// a cast to void applied to one operand of a comma expression is
		// not detected; known gap inherited from the original design
	}

	for _, kid := range cur.Children() {
		if err := w.visit(t, kid, child); err != nil {
			return err
		}
	}
	return nil
}

// call judges one call expression against the state inherited from its
// parent. Unresolvable and unprototyped targets are warned about and
// skipped; unknown return types are skipped silently.
func (w *Walker) call(t *frontend.Tree, cur frontend.Cursor, st state) error {
	decl, ok := cur.ResolveCall()
	at := cur.Location()
	if !ok || !decl.Prototyped {
		if w.Warnf != nil {
			w.Warnf(t.Path(), at, decl.Name)
		}
		return nil
	}

	switch decl.Return {
	case frontend.ReturnVoid:
		if st.voidCastAbove {
			return w.Sink.SuperfluousVoid(SuperfluousVoid{
				File:     t.Path(),
				Function: decl.Name,
				From:     st.castExtent.Start,
				To:       st.castExtent.End,
			})
		}
	case frontend.ReturnUnknown:
		// cannot judge reliably; no finding
	default:
		if st.compoundStmtAbove && !st.voidCastAbove {
			return w.Sink.MissingVoid(MissingVoid{
				File:     t.Path(),
				Function: decl.Name,
				At:       at,
			})
		}
	}
	return nil
}
