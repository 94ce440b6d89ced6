// Package frontend parses C source into a traversable syntax tree and
// resolves call targets to their declarations. It wraps the tree-sitter C
// grammar and layers on top of it the pieces a grammar alone does not give:
// a closed set of node kinds, token extents for casts, and a declaration
// index built from the parsed file and its reachable headers.
package frontend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/SamuelMarks/voidcaster/pkg/loc"
)

// maxIncludeDepth caps transitive header indexing so that include cycles or
// pathological header chains cannot recurse unboundedly.
const maxIncludeDepth = 32

// maxDiagnostics bounds how many syntax diagnostics are collected per file.
const maxDiagnostics = 20

// Options configures a Parser.
type Options struct {
	// Defines are macro definitions (as from -D flags): name to replacement
	// text, empty string for a bare define. They participate in type-name
	// resolution only; no textual expansion is performed.
	Defines map[string]string

	// IncludeDirs are the directories searched for included headers, in
	// order (as from -I flags).
	IncludeDirs []string
}

// Parser turns C source files into Trees. It is not safe for concurrent
// use; the tool processes files strictly one at a time.
type Parser struct {
	opts   Options
	parser *sitter.Parser
}

// New creates a Parser for the C language with the given options.
func New(opts Options) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(c.GetLanguage())
	return &Parser{opts: opts, parser: p}
}

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityWarning diagnostics do not prevent classification.
	SeverityWarning Severity = iota
	// SeverityError diagnostics make the tree unusable.
	SeverityError
)

// Diagnostic is one message produced while parsing a file.
type Diagnostic struct {
	File     string
	At       loc.Location
	Severity Severity
	Message  string
}

// String renders the diagnostic in file:line:col: message form.
func (d Diagnostic) String() string {
	sev := "warning"
	if d.Severity >= SeverityError {
		sev = "error"
	}
	return fmt.Sprintf("%s:%s: %s: %s", d.File, d.At, sev, d.Message)
}

// ParseError reports that a file could not be parsed into a usable tree.
// It carries every diagnostic collected before parsing was abandoned.
type ParseError struct {
	File        string
	Diagnostics []Diagnostic
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %d parse diagnostics at or above error severity", e.File, len(e.Diagnostics))
}

// Tree is one parsed translation unit. It owns the underlying syntax tree
// and all cursors derived from it; callers must not retain cursors past the
// traversal they were obtained for.
type Tree struct {
	path  string
	src   []byte
	root  *sitter.Node
	index *Index
	diags []Diagnostic
}

// Path returns the name of the parsed file.
func (t *Tree) Path() string { return t.path }

// Root returns a cursor at the translation unit node.
func (t *Tree) Root() Cursor { return Cursor{node: t.root, tree: t} }

// Diagnostics returns the messages produced while parsing, in document
// order.
func (t *Tree) Diagnostics() []Diagnostic { return t.diags }

// content returns the source text covered by a node.
func (t *Tree) content(n *sitter.Node) string { return n.Content(t.src) }

// Parse reads and parses the named file. Open failures are returned as-is
// (the caller distinguishes them from parse failures); a file whose syntax
// tree contains error-severity diagnostics yields a *ParseError and no Tree.
func (p *Parser) Parse(ctx context.Context, path string) (*Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.parse(ctx, path, src)
}

// ParseBytes parses in-memory source attributed to path. Include resolution
// for quoted includes is relative to path's directory.
func (p *Parser) ParseBytes(ctx context.Context, path string, src []byte) (*Tree, error) {
	return p.parse(ctx, path, src)
}

func (p *Parser) parse(ctx context.Context, path string, src []byte) (*Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("front end failure on %s: %w", path, err)
	}

	t := &Tree{path: path, src: src, root: tree.RootNode()}
	t.diags = collectDiagnostics(path, t.root)
	for _, d := range t.diags {
		if d.Severity >= SeverityError {
			return nil, &ParseError{File: path, Diagnostics: t.diags}
		}
	}

	t.index = NewIndex(p.opts.Defines)
	p.populate(ctx, t.index, path, src, t.root, 0, map[string]bool{})
	return t, nil
}

// populate indexes the declarations of one parsed unit and recurses into the
// headers it includes. Headers that cannot be located or parsed are skipped;
// calls into them degrade to the unresolvable-call warning path.
func (p *Parser) populate(ctx context.Context, ix *Index, path string, src []byte, root *sitter.Node, depth int, seen map[string]bool) {
	ix.AddTranslationUnit(root, src)

	if depth >= maxIncludeDepth {
		return
	}
	fromDir := filepath.Dir(path)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "preproc_include":
				target, ok := p.resolveInclude(fromDir, child, src)
				if !ok {
					continue
				}
				abs, err := filepath.Abs(target)
				if err != nil {
					abs = target
				}
				if seen[abs] {
					continue
				}
				seen[abs] = true
				hdr, err := os.ReadFile(target)
				if err != nil {
					continue
				}
				hdrTree, err := p.parser.ParseCtx(ctx, nil, hdr)
				if err != nil {
					continue
				}
				p.populate(ctx, ix, target, hdr, hdrTree.RootNode(), depth+1, seen)
			case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif":
				walk(child)
			}
		}
	}
	walk(root)
}

// resolveInclude maps an include directive to an on-disk path. Quoted
// includes search the including file's directory first, then the -I dirs;
// angle-bracket includes search the -I dirs only.
func (p *Parser) resolveInclude(fromDir string, incl *sitter.Node, src []byte) (string, bool) {
	pathNode := incl.ChildByFieldName("path")
	if pathNode == nil {
		return "", false
	}
	spec := pathNode.Content(src)
	var dirs []string
	switch pathNode.Type() {
	case "string_literal":
		spec = strings.Trim(spec, `"`)
		dirs = append([]string{fromDir}, p.opts.IncludeDirs...)
	case "system_lib_string":
		spec = strings.Trim(spec, "<>")
		dirs = p.opts.IncludeDirs
	default:
		return "", false
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, filepath.FromSlash(spec))
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// collectDiagnostics walks the tree for ERROR and missing nodes. The
// grammar has no warning concept, so every diagnostic is error severity.
func collectDiagnostics(path string, root *sitter.Node) []Diagnostic {
	var diags []Diagnostic
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if len(diags) >= maxDiagnostics {
			return
		}
		switch {
		case n.Type() == "ERROR":
			diags = append(diags, Diagnostic{
				File:     path,
				At:       pointLoc(n.StartPoint()),
				Severity: SeverityError,
				Message:  "syntax error",
			})
			return
		case n.IsMissing():
			diags = append(diags, Diagnostic{
				File:     path,
				At:       pointLoc(n.StartPoint()),
				Severity: SeverityError,
				Message:  fmt.Sprintf("missing %q", n.Type()),
			})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	if root.HasError() {
		walk(root)
	}
	return diags
}
