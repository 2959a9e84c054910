// Package ast defines the syntax tree produced by the parser. Every node
// keeps the source span it was parsed from so later phases can attach
// diagnostics without re-lexing.
package ast

import (
	"cubent/internal/source"
)

// Node is implemented by every syntax-tree node.
type Node interface {
	Span() source.Span
}

// Decl is a top-level declaration inside a file.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// File is the root node for one parsed source file.
type File struct {
	FileID source.FileID
	Path   string
	Decls  []Decl
	Sp     source.Span
}

func (f *File) Span() source.Span { return f.Sp }

// Namespace returns the single namespace declared in the file, nil when the
// file declares none or more than one.
func (f *File) Namespace() *NamespaceDecl {
	var found *NamespaceDecl
	for _, d := range f.Decls {
		ns, ok := d.(*NamespaceDecl)
		if !ok {
			continue
		}
		if found != nil {
			return nil
		}
		found = ns
	}
	return found
}
