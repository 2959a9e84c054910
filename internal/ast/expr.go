package ast

import (
	"cubent/internal/source"
	"cubent/internal/token"
)

// Ident is a plain name reference.
type Ident struct {
	Name string
	Sp   source.Span
}

func (*Ident) exprNode()           {}
func (e *Ident) Span() source.Span { return e.Sp }

// Literal is a numeric, string or boolean literal. Kind is the literal token
// kind and Text the raw lexeme including any suffix or quotes.
type Literal struct {
	Kind token.Kind
	Text string
	Sp   source.Span
}

func (*Literal) exprNode()           {}
func (e *Literal) Span() source.Span { return e.Sp }

// BinaryExpr is `X op Y` for arithmetic, comparison and logical operators.
type BinaryExpr struct {
	Op     token.Kind
	OpSpan source.Span
	X, Y   Expr
	Sp     source.Span
}

func (*BinaryExpr) exprNode()           {}
func (e *BinaryExpr) Span() source.Span { return e.Sp }

// CallExpr is `callee(args)`. Callee is an Ident, optionally qualified with an
// import alias as `alias.name`.
type CallExpr struct {
	Alias     string // import alias qualifier, empty for local calls
	AliasSpan source.Span
	Name      string
	NameSpan  source.Span
	Args      []Expr
	Sp        source.Span
}

func (*CallExpr) exprNode()           {}
func (e *CallExpr) Span() source.Span { return e.Sp }
