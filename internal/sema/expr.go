package sema

import (
	"fmt"

	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/symbols"
	"cubent/internal/token"
)

func (c *checker) checkExpr(e ast.Expr, sc *scope) Type {
	switch e := e.(type) {
	case *ast.Literal:
		return literalType(e.Kind)

	case *ast.Ident:
		v, ok := sc.lookup(e.Name)
		if !ok {
			c.report(diag.SemaUndefinedReference, e.Sp,
				fmt.Sprintf("undefined variable %q", e.Name))
			return TInvalid
		}
		return v.typ

	case *ast.BinaryExpr:
		return c.checkBinary(e, sc)

	case *ast.CallExpr:
		return c.checkCall(e, sc)
	}
	return TInvalid
}

func (c *checker) checkBinary(e *ast.BinaryExpr, sc *scope) Type {
	lt := c.checkExpr(e.X, sc)
	rt := c.checkExpr(e.Y, sc)

	switch e.Op {
	case token.Plus, token.Minus, token.Star, token.Slash:
		if bothNumericLike(lt, rt) {
			if lt.IsNumeric() && rt.IsNumeric() {
				return wider(lt, rt)
			}
			return TAny
		}
		c.reportBinary(e, lt, rt)
		return TInvalid

	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		if bothNumericLike(lt, rt) {
			return TBoolean
		}
		c.reportBinary(e, lt, rt)
		return TBoolean

	case token.EqEq, token.BangEq:
		if !lt.ConvertibleTo(rt) && !rt.ConvertibleTo(lt) {
			c.reportBinary(e, lt, rt)
		}
		return TBoolean

	case token.AndAnd, token.OrOr:
		if !lt.BooleanContext() || !rt.BooleanContext() {
			c.reportBinary(e, lt, rt)
		}
		return TBoolean
	}
	return TInvalid
}

func bothNumericLike(a, b Type) bool {
	ok := func(t Type) bool { return t.IsNumeric() || t == TAny || t == TInvalid }
	return ok(a) && ok(b)
}

func (c *checker) reportBinary(e *ast.BinaryExpr, lt, rt Type) {
	if lt == TInvalid || rt == TInvalid {
		// Operand already produced a diagnostic.
		return
	}
	c.report(diag.SemaInvalidBinaryOperands, e.OpSpan,
		fmt.Sprintf("operator %s is not defined for %s and %s", opText(e.Op), lt, rt))
}

func opText(k token.Kind) string {
	switch k {
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.Lt:
		return "<"
	case token.LtEq:
		return "<="
	case token.Gt:
		return ">"
	case token.GtEq:
		return ">="
	case token.EqEq:
		return "=="
	case token.BangEq:
		return "!="
	case token.AndAnd:
		return "&&"
	case token.OrOr:
		return "||"
	}
	return k.String()
}

func (c *checker) checkCall(e *ast.CallExpr, sc *scope) Type {
	sym := c.resolveCallee(e)
	if sym == nil {
		// Still type the arguments so their own errors surface.
		for _, a := range e.Args {
			c.checkExpr(a, sc)
		}
		return TInvalid
	}

	params := sym.Params()
	if len(e.Args) != len(params) {
		c.report(diag.SemaArityMismatch, e.Sp, fmt.Sprintf(
			"%s expects %d argument(s), got %d", sym.FQN(), len(params), len(e.Args)))
		for _, a := range e.Args {
			c.checkExpr(a, sc)
		}
	} else {
		for i, a := range e.Args {
			at := c.checkExpr(a, sc)
			pt, ok := resolveTypeRef(params[i].Type)
			if !ok {
				continue
			}
			if !at.ConvertibleTo(pt) {
				c.report(diag.SemaTypeMismatch, a.Span(), fmt.Sprintf(
					"argument %d of %s: cannot convert %s to %s",
					i+1, sym.FQN(), at, pt))
			}
		}
	}

	rt, ok := resolveTypeRef(sym.Result())
	if !ok {
		return TInvalid
	}
	return rt
}

// resolveCallee finds the called function. Unqualified names try the current
// namespace first, then the file's import aliases. Qualified names try the
// qualifier as a namespace-alias first, then as a namespace.
func (c *checker) resolveCallee(e *ast.CallExpr) *symbols.FuncSym {
	if e.Alias == "" {
		if sym := c.table.Func(c.ns, e.Name); sym != nil {
			return sym
		}
		if tgt, ok := c.table.Alias(c.file, e.Name); ok && tgt.Func != "" {
			if sym := c.table.Func(tgt.Namespace, tgt.Func); sym != nil {
				return sym
			}
		}
		c.report(diag.SemaUndefinedReference, e.NameSpan,
			fmt.Sprintf("undefined function %q", e.Name))
		return nil
	}

	ns := ""
	if tgt, ok := c.table.Alias(c.file, e.Alias); ok && tgt.Func == "" {
		ns = tgt.Namespace
	} else if c.table.HasNamespace(e.Alias) {
		ns = e.Alias
	}
	if ns == "" {
		c.report(diag.SemaUndefinedReference, e.AliasSpan,
			fmt.Sprintf("%q is not an imported namespace", e.Alias))
		return nil
	}
	sym := c.table.Func(ns, e.Name)
	if sym == nil {
		c.report(diag.SemaUndefinedReference, e.NameSpan,
			fmt.Sprintf("namespace %q has no function %q", ns, e.Name))
	}
	return sym
}
