package frontend

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ReturnKind classifies a declared function's return type as far as the
// tool needs to: void, definitely-not-void, or not determinable.
type ReturnKind int

const (
	// ReturnUnknown means the return type could not be resolved; the call
	// cannot be judged.
	ReturnUnknown ReturnKind = iota
	// ReturnVoid means the function returns void.
	ReturnVoid
	// ReturnConcrete means the function returns a non-void value.
	ReturnConcrete
)

// Declaration is one indexed function declaration.
type Declaration struct {
	// Name is the declared identifier.
	Name string
	// Return classifies the declared return type.
	Return ReturnKind
	// Prototyped is false for functions declared with an empty, unspecified
	// parameter list; such declarations carry no checkable type.
	Prototyped bool
}

// typeRef is an unresolved reference to a type: either a direct
// classification or an alias naming a typedef or macro to chase.
type typeRef struct {
	kind  ReturnKind
	alias string
}

// Index maps function names to their declarations, collected from a parsed
// translation unit and its reachable headers. Typedef chains and simple
// object-like macro definitions participate in return-type resolution.
type Index struct {
	decls    map[string]Declaration
	typedefs map[string]typeRef
	defines  map[string]string
}

// NewIndex creates an empty index seeded with macro definitions.
func NewIndex(defines map[string]string) *Index {
	return &Index{
		decls:    make(map[string]Declaration),
		typedefs: make(map[string]typeRef),
		defines:  defines,
	}
}

// Lookup resolves a function name to its indexed declaration.
func (ix *Index) Lookup(name string) (Declaration, bool) {
	d, ok := ix.decls[name]
	return d, ok
}

// AddTranslationUnit indexes the function declarations, definitions and
// typedefs found at the top level of root. Preprocessor conditional blocks
// are descended into; both branches of a conditional contribute.
func (ix *Index) AddTranslationUnit(root *sitter.Node, src []byte) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			ix.addFunction(child, src)
		case "declaration":
			ix.addDeclaration(child, src)
		case "type_definition":
			ix.addTypedef(child, src)
		case "preproc_if", "preproc_ifdef", "preproc_else", "preproc_elif":
			ix.AddTranslationUnit(child, src)
		}
	}
}

// addFunction indexes a function definition node.
func (ix *Index) addFunction(n *sitter.Node, src []byte) {
	typeNode := n.ChildByFieldName("type")
	declNode := n.ChildByFieldName("declarator")
	if typeNode == nil || declNode == nil {
		return
	}
	ix.addFromDeclarator(typeNode, declNode, src)
}

// addDeclaration indexes the function declarators of a declaration node.
// Object declarations and declarations without a function declarator are
// ignored.
func (ix *Index) addDeclaration(n *sitter.Node, src []byte) {
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		// node handles are not pointer-comparable; skip the type child by
		// position
		if child.StartByte() == typeNode.StartByte() {
			continue
		}
		ix.addFromDeclarator(typeNode, child, src)
	}
}

// addFromDeclarator unwraps a declarator chain and, if it declares a
// function, records it.
func (ix *Index) addFromDeclarator(typeNode, declNode *sitter.Node, src []byte) {
	name, returnsPointer, params, ok := unwrapFunctionDeclarator(declNode, src)
	if !ok {
		return
	}
	decl := Declaration{Name: name, Prototyped: params > 0}
	if returnsPointer {
		decl.Return = ReturnConcrete
	} else {
		decl.Return = ix.resolve(classifyType(typeNode, src), map[string]bool{})
	}
	ix.decls[name] = decl
}

// addTypedef records a type alias. Pointer typedefs are concrete
// immediately; plain aliases are chased lazily at resolution time.
func (ix *Index) addTypedef(n *sitter.Node, src []byte) {
	typeNode := n.ChildByFieldName("type")
	declNode := n.ChildByFieldName("declarator")
	if typeNode == nil || declNode == nil {
		return
	}
	pointer := false
	for declNode != nil && declNode.Type() == "pointer_declarator" {
		pointer = true
		declNode = declNode.ChildByFieldName("declarator")
	}
	if declNode == nil || declNode.Type() != "type_identifier" {
		return
	}
	name := declNode.Content(src)
	if pointer {
		ix.typedefs[name] = typeRef{kind: ReturnConcrete}
		return
	}
	ix.typedefs[name] = classifyType(typeNode, src)
}

// resolve chases a type reference through macro definitions and typedef
// chains. The seen set guards against typedef cycles.
func (ix *Index) resolve(ref typeRef, seen map[string]bool) ReturnKind {
	for ref.alias != "" {
		if seen[ref.alias] {
			return ReturnUnknown
		}
		seen[ref.alias] = true

		if val, ok := ix.defines[ref.alias]; ok {
			switch val {
			case "void":
				return ReturnVoid
			case "":
				return ReturnUnknown
			default:
				return ReturnConcrete
			}
		}
		next, ok := ix.typedefs[ref.alias]
		if !ok {
			return ReturnUnknown
		}
		ref = next
	}
	return ref.kind
}

// classifyType maps a type specifier node to a type reference.
func classifyType(typeNode *sitter.Node, src []byte) typeRef {
	switch typeNode.Type() {
	case "primitive_type":
		if typeNode.Content(src) == "void" {
			return typeRef{kind: ReturnVoid}
		}
		return typeRef{kind: ReturnConcrete}
	case "sized_type_specifier", "struct_specifier", "union_specifier", "enum_specifier":
		return typeRef{kind: ReturnConcrete}
	case "type_identifier":
		return typeRef{alias: typeNode.Content(src)}
	default:
		return typeRef{kind: ReturnUnknown}
	}
}

// unwrapFunctionDeclarator walks a declarator chain looking for a function
// declarator and the declared name. returnsPointer reports pointers seen
// before the function declarator (a pointer return type); pointers inside
// it (function pointers) leave the return type with the base type. params
// is the number of declared parameters, zero for an unspecified list.
func unwrapFunctionDeclarator(declNode *sitter.Node, src []byte) (name string, returnsPointer bool, params int, ok bool) {
	inFunction := false
	n := declNode
	for n != nil {
		switch n.Type() {
		case "pointer_declarator":
			if !inFunction {
				returnsPointer = true
			}
			n = n.ChildByFieldName("declarator")
		case "function_declarator":
			if !inFunction {
				inFunction = true
				if pl := n.ChildByFieldName("parameters"); pl != nil {
					params = int(pl.NamedChildCount())
				}
			}
			n = n.ChildByFieldName("declarator")
		case "parenthesized_declarator":
			if n.NamedChildCount() == 0 {
				return "", false, 0, false
			}
			n = n.NamedChild(0)
		case "identifier":
			return n.Content(src), returnsPointer, params, inFunction
		default:
			return "", false, 0, false
		}
	}
	return "", false, 0, false
}
