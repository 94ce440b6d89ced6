package frontend

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/SamuelMarks/voidcaster/pkg/loc"
)

// Kind is the closed set of node kinds the classifier distinguishes. The
// grammar exposes far more; everything this tool does not care about maps to
// KindOther, so an unknown grammar node can never be mistaken for a handled
// one.
type Kind int

const (
	// KindOther is the catch-all for unhandled node kinds.
	KindOther Kind = iota
	// KindCompoundStmt is a { ... } statement list.
	KindCompoundStmt
	// KindCaseStmt is a case or default label together with the statements
	// it governs.
	KindCaseStmt
	// KindVoidCast is a C-style cast whose target type is plain void.
	KindVoidCast
	// KindCall is a call expression.
	KindCall
	// KindBinary is a binary operator, including the comma operator.
	KindBinary
	// KindExprStmt is the grammar's statement wrapper around an expression
	// used at statement level.
	KindExprStmt
)

// String returns the kind's name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindCompoundStmt:
		return "compound-statement"
	case KindCaseStmt:
		return "case-statement"
	case KindVoidCast:
		return "void-cast"
	case KindCall:
		return "call"
	case KindBinary:
		return "binary-operator"
	case KindExprStmt:
		return "expression-statement"
	default:
		return "other"
	}
}

// Cursor references one node of a Tree. Cursors are cheap values borrowed
// from the Tree; they must not outlive the traversal they were created for.
type Cursor struct {
	node *sitter.Node
	tree *Tree
}

// Kind maps the underlying grammar node onto the classifier's closed kind
// set.
func (c Cursor) Kind() Kind {
	switch c.node.Type() {
	case "compound_statement":
		return KindCompoundStmt
	case "case_statement":
		return KindCaseStmt
	case "cast_expression":
		if c.isVoidCast() {
			return KindVoidCast
		}
		return KindOther
	case "call_expression":
		return KindCall
	case "binary_expression", "comma_expression":
		return KindBinary
	case "expression_statement":
		return KindExprStmt
	default:
		return KindOther
	}
}

// isVoidCast reports whether the cast's type descriptor is exactly the
// keyword void. Casts to void pointers or qualified void are not void casts.
func (c Cursor) isVoidCast() bool {
	tn := c.node.ChildByFieldName("type")
	if tn == nil || tn.NamedChildCount() != 1 {
		return false
	}
	base := tn.NamedChild(0)
	return base.Type() == "primitive_type" && c.tree.content(base) == "void"
}

// Location returns the 1-based position of the node's first byte.
func (c Cursor) Location() loc.Location {
	return pointLoc(c.node.StartPoint())
}

// Extent returns the node's source span. The end points at the first byte
// after the node.
func (c Cursor) Extent() loc.Range {
	return loc.Range{Start: pointLoc(c.node.StartPoint()), End: pointLoc(c.node.EndPoint())}
}

// Children returns the node's named children in document order.
func (c Cursor) Children() []Cursor {
	n := int(c.node.NamedChildCount())
	kids := make([]Cursor, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, Cursor{node: c.node.NamedChild(i), tree: c.tree})
	}
	return kids
}

// CastExtent returns the token extent of a void cast: the opening
// parenthesis through the closing parenthesis, excluding the operand. The
// extent is derived from the cast's own tokens because the node's extent
// also covers the expression being cast.
func (c Cursor) CastExtent() (loc.Range, bool) {
	if c.Kind() != KindVoidCast {
		return loc.Range{}, false
	}
	value := c.node.ChildByFieldName("value")
	var first, last *sitter.Node
	for i := 0; i < int(c.node.ChildCount()); i++ {
		tok := c.node.Child(i)
		if value != nil && tok.StartByte() >= value.StartByte() {
			break
		}
		if first == nil {
			first = tok
		}
		last = tok
	}
	if first == nil {
		return loc.Range{}, false
	}
	return loc.Range{Start: pointLoc(first.StartPoint()), End: pointLoc(last.EndPoint())}, true
}

// CallName returns the called function's name when the callee is a plain
// identifier. Calls through pointers, members or parenthesised expressions
// have no resolvable name.
func (c Cursor) CallName() (string, bool) {
	if c.node.Type() != "call_expression" {
		return "", false
	}
	fn := c.node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	if fn.Type() != "identifier" {
		return c.tree.content(fn), false
	}
	return c.tree.content(fn), true
}

// ResolveCall resolves a call expression to its target declaration via the
// tree's declaration index. The boolean is false when the callee is not an
// identifier or no declaration for it was indexed; the returned
// Declaration still carries the best-effort callee name for diagnostics.
func (c Cursor) ResolveCall() (Declaration, bool) {
	name, ok := c.CallName()
	if !ok {
		return Declaration{Name: name}, false
	}
	decl, ok := c.tree.index.Lookup(name)
	if !ok {
		return Declaration{Name: name}, false
	}
	return decl, true
}

// pointLoc converts a 0-based grammar point to a 1-based location.
func pointLoc(p sitter.Point) loc.Location {
	return loc.Location{Line: p.Row + 1, Col: p.Column + 1}
}
