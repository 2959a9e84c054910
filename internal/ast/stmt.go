package ast

import (
	"cubent/internal/source"
)

// BlockStmt is a `{ ... }` statement sequence. Blocks open a new scope.
type BlockStmt struct {
	Stmts []Stmt
	Sp    source.Span
}

func (*BlockStmt) stmtNode()           {}
func (s *BlockStmt) Span() source.Span { return s.Sp }

// VarDeclStmt is `var name = init;`. The variable's type is inferred from
// the initializer.
type VarDeclStmt struct {
	Name     string
	NameSpan source.Span
	Init     Expr
	Sp       source.Span
}

func (*VarDeclStmt) stmtNode()           {}
func (s *VarDeclStmt) Span() source.Span { return s.Sp }

// AssignStmt is `name = value;`.
type AssignStmt struct {
	Name     string
	NameSpan source.Span
	Value    Expr
	Sp       source.Span
}

func (*AssignStmt) stmtNode()           {}
func (s *AssignStmt) Span() source.Span { return s.Sp }

// IfStmt is `if cond { } else { }`; Else is nil, a *BlockStmt, or another
// *IfStmt for `else if` chains.
type IfStmt struct {
	Cond Expr
	Then *BlockStmt
	Else Stmt
	Sp   source.Span
}

func (*IfStmt) stmtNode()           {}
func (s *IfStmt) Span() source.Span { return s.Sp }

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	Cond Expr
	Body *BlockStmt
	Sp   source.Span
}

func (*WhileStmt) stmtNode()           {}
func (s *WhileStmt) Span() source.Span { return s.Sp }

// ReturnStmt is `return;` or `return expr;`.
type ReturnStmt struct {
	Value Expr // nil for a bare return
	Sp    source.Span
}

func (*ReturnStmt) stmtNode()           {}
func (s *ReturnStmt) Span() source.Span { return s.Sp }

// ExprStmt is an expression in statement position, e.g. a call.
type ExprStmt struct {
	X  Expr
	Sp source.Span
}

func (*ExprStmt) stmtNode()           {}
func (s *ExprStmt) Span() source.Span { return s.Sp }
