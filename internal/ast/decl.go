package ast

import (
	"cubent/internal/source"
)

// ImportDecl is `import ns.name as alias;`. Path is the dotted qualified
// name as written; Alias is empty when the `as` clause is absent.
type ImportDecl struct {
	Path      string
	PathSpan  source.Span
	Alias     string
	AliasSpan source.Span
	Sp        source.Span
}

func (*ImportDecl) declNode()           {}
func (d *ImportDecl) Span() source.Span { return d.Sp }

// NamespaceDecl is `namespace name { ...decls }`.
type NamespaceDecl struct {
	Name     string
	NameSpan source.Span
	Decls    []Decl
	Sp       source.Span
}

func (*NamespaceDecl) declNode()           {}
func (d *NamespaceDecl) Span() source.Span { return d.Sp }

// Param is one function parameter.
type Param struct {
	Name     string
	NameSpan source.Span
	Type     *TypeRef
	Sp       source.Span
}

func (p *Param) Span() source.Span { return p.Sp }

// TypeRef names a type in source, e.g. `Int` or `Void`.
type TypeRef struct {
	Name string
	Sp   source.Span
}

func (t *TypeRef) Span() source.Span { return t.Sp }

// FuncDecl is `function name(params): Ret { body }`.
type FuncDecl struct {
	Name     string
	NameSpan source.Span
	Params   []*Param
	Result   *TypeRef
	Body     *BlockStmt
	Sp       source.Span
}

func (*FuncDecl) declNode()           {}
func (d *FuncDecl) Span() source.Span { return d.Sp }

// McFuncDecl is `mcfunction "ns:path" name(params): Ret;`, an extern
// declaration binding a raw command function shipped with the pack to a
// typed signature.
type McFuncDecl struct {
	Location     string // unquoted "ns:path" target
	LocationSpan source.Span
	Name         string
	NameSpan     source.Span
	Params       []*Param
	Result       *TypeRef
	Sp           source.Span
}

func (*McFuncDecl) declNode()           {}
func (d *McFuncDecl) Span() source.Span { return d.Sp }

// HookKind distinguishes the load and tick hook blocks.
type HookKind uint8

const (
	HookLoad HookKind = iota
	HookTick
)

func (h HookKind) String() string {
	if h == HookTick {
		return "tick"
	}
	return "load"
}

// HookDecl is a top-level `load { body }` or `tick { body }` block. The body
// runs on the matching game event of the file's namespace.
type HookDecl struct {
	Kind HookKind
	Body *BlockStmt
	Sp   source.Span
}

func (*HookDecl) declNode()           {}
func (d *HookDecl) Span() source.Span { return d.Sp }
