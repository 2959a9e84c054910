package sema

import (
	"fmt"

	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/source"
	"cubent/internal/symbols"
)

// Check verifies every linked function and hook block. It walks the table in
// its deterministic order, so the same program always yields the same
// diagnostics in the same sequence.
func Check(table *symbols.Table, reporter diag.Reporter) {
	c := &checker{table: table, reporter: reporter}

	for _, sym := range table.Functions() {
		c.checkSignature(sym)
		if sym.Decl != nil {
			c.checkFunction(sym)
		}
	}
	for _, hook := range table.Hooks() {
		c.checkHook(hook)
	}
}

type checker struct {
	table    *symbols.Table
	reporter diag.Reporter

	// per-function state
	ns     string
	file   source.FileID
	result Type
}

func (c *checker) report(code diag.Code, sp source.Span, msg string) {
	if c.reporter != nil {
		c.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (c *checker) checkSignature(sym *symbols.FuncSym) {
	for _, p := range sym.Params() {
		if t, ok := resolveTypeRef(p.Type); !ok || t == TVoid {
			c.reportBadType(p.Type, "parameter type")
		}
	}
	if _, ok := resolveTypeRef(sym.Result()); !ok {
		c.reportBadType(sym.Result(), "return type")
	}
}

func (c *checker) reportBadType(ref *ast.TypeRef, what string) {
	if ref == nil {
		return
	}
	if ref.Name == "Void" {
		c.report(diag.SemaUnknownType, ref.Sp, "Void is not allowed as a "+what)
		return
	}
	c.report(diag.SemaUnknownType, ref.Sp, fmt.Sprintf("unknown %s %q", what, ref.Name))
}

func (c *checker) checkFunction(sym *symbols.FuncSym) {
	c.ns = sym.Namespace
	c.file = sym.File
	c.result, _ = resolveTypeRef(sym.Decl.Result)

	sc := newScope(nil)
	for _, p := range sym.Decl.Params {
		t, ok := resolveTypeRef(p.Type)
		if !ok {
			t = TInvalid
		}
		if _, fresh := sc.declare(p.Name, t, p.NameSpan); !fresh {
			c.report(diag.SemaRedeclaredVariable, p.NameSpan,
				fmt.Sprintf("duplicate parameter %q", p.Name))
		}
	}

	c.checkBlockInto(sym.Decl.Body, sc)

	if c.result != TVoid && c.result != TInvalid && !blockTerminates(sym.Decl.Body) {
		c.report(diag.SemaMissingReturn, sym.Decl.NameSpan,
			fmt.Sprintf("function %q does not return a value on every path", sym.Decl.Name))
	}
}

// checkHook treats the hook body as the body of a Void function in the
// hook's namespace.
func (c *checker) checkHook(hook *symbols.HookSym) {
	c.ns = hook.Namespace
	c.file = hook.File
	c.result = TVoid
	c.checkBlockInto(hook.Body, newScope(nil))
}

// checkBlockInto checks statements directly in the given scope. Used for
// function bodies where parameters share the body scope.
func (c *checker) checkBlockInto(b *ast.BlockStmt, sc *scope) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		c.checkStmt(s, sc)
	}
}

func (c *checker) checkStmt(s ast.Stmt, sc *scope) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		c.checkBlockInto(s, newScope(sc))

	case *ast.VarDeclStmt:
		t := c.checkExpr(s.Init, sc)
		if t == TVoid {
			c.report(diag.SemaTypeMismatch, s.Init.Span(),
				"cannot initialize a variable from a Void call")
			t = TInvalid
		}
		if _, fresh := sc.declare(s.Name, t, s.NameSpan); !fresh {
			c.report(diag.SemaRedeclaredVariable, s.NameSpan,
				fmt.Sprintf("%q is already declared in this block", s.Name))
		}

	case *ast.AssignStmt:
		t := c.checkExpr(s.Value, sc)
		v, ok := sc.lookup(s.Name)
		if !ok {
			c.report(diag.SemaUndefinedReference, s.NameSpan,
				fmt.Sprintf("undefined variable %q", s.Name))
			return
		}
		if !t.ConvertibleTo(v.typ) {
			c.report(diag.SemaTypeMismatch, s.Value.Span(),
				fmt.Sprintf("cannot assign %s to %s variable %q", t, v.typ, s.Name))
		}

	case *ast.IfStmt:
		c.checkCond(s.Cond, sc)
		c.checkBlockInto(s.Then, newScope(sc))
		if s.Else != nil {
			c.checkStmt(s.Else, sc)
		}

	case *ast.WhileStmt:
		c.checkCond(s.Cond, sc)
		c.checkBlockInto(s.Body, newScope(sc))

	case *ast.ReturnStmt:
		c.checkReturn(s, sc)

	case *ast.ExprStmt:
		c.checkExpr(s.X, sc)
	}
}

func (c *checker) checkCond(e ast.Expr, sc *scope) {
	if e == nil {
		return
	}
	t := c.checkExpr(e, sc)
	if !t.BooleanContext() {
		c.report(diag.SemaInvalidBoolContext, e.Span(),
			fmt.Sprintf("condition has type %s, not convertible to Boolean", t))
	}
}

func (c *checker) checkReturn(s *ast.ReturnStmt, sc *scope) {
	if c.result == TVoid {
		if s.Value != nil {
			c.checkExpr(s.Value, sc)
			c.report(diag.SemaVoidReturnValue, s.Value.Span(),
				"a Void function cannot return a value")
		}
		return
	}
	if s.Value == nil {
		c.report(diag.SemaTypeMismatch, s.Sp,
			fmt.Sprintf("return must carry a %s value", c.result))
		return
	}
	t := c.checkExpr(s.Value, sc)
	if !t.ConvertibleTo(c.result) {
		c.report(diag.SemaTypeMismatch, s.Value.Span(),
			fmt.Sprintf("cannot return %s from a function declared %s", t, c.result))
	}
}

// blockTerminates reports whether control cannot fall off the end of the
// block. A while body never counts: the loop may not run.
func blockTerminates(b *ast.BlockStmt) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Stmts {
		if stmtTerminates(s) {
			return true
		}
	}
	return false
}

func stmtTerminates(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BlockStmt:
		return blockTerminates(s)
	case *ast.IfStmt:
		if s.Else == nil {
			return false
		}
		return blockTerminates(s.Then) && stmtTerminates(s.Else)
	}
	return false
}
