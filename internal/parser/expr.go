package parser

import (
	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/token"
)

// binPrec returns the binding power of a binary operator, 0 for non-operators.
func binPrec(k token.Kind) int {
	switch k {
	case token.OrOr:
		return 1
	case token.AndAnd:
		return 2
	case token.EqEq, token.BangEq:
		return 3
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return 4
	case token.Plus, token.Minus:
		return 5
	case token.Star, token.Slash:
		return 6
	}
	return 0
}

func (p *parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinary(1)
}

// parseBinary is classic precedence climbing; all operators are
// left-associative.
func (p *parser) parseBinary(minPrec int) (ast.Expr, bool) {
	left, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		prec := binPrec(p.tok.Kind)
		if prec < minPrec {
			return left, true
		}
		op := p.tok
		p.advance()
		right, ok := p.parseBinary(prec + 1)
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{
			Op:     op.Kind,
			OpSpan: op.Span,
			X:      left,
			Y:      right,
			Sp:     left.Span().Cover(right.Span()),
		}
	}
}

func (p *parser) parsePrimary() (ast.Expr, bool) {
	switch p.tok.Kind {
	case token.IntLit, token.ByteLit, token.ShortLit, token.LongLit,
		token.FloatLit, token.DoubleLit, token.BoolLit, token.StringLit:
		t := p.tok
		p.advance()
		return &ast.Literal{Kind: t.Kind, Text: t.Text, Sp: t.Span}, true

	case token.LParen:
		p.advance()
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "')'"); !ok {
			return nil, false
		}
		return x, true

	case token.Ident:
		return p.parseIdentExpr()

	default:
		p.err(diag.SynExpectExpression, p.tok.Span,
			"expected expression, found "+describe(p.tok))
		return nil, false
	}
}

// parseIdentExpr parses a name reference or a call. Dotted paths are only
// valid as call targets: `alias.name(...)`.
func (p *parser) parseIdentExpr() (ast.Expr, bool) {
	first := p.tok
	p.advance()

	switch p.tok.Kind {
	case token.Dot:
		p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "name after '.'")
		if !ok {
			return nil, false
		}
		if !p.at(token.LParen) {
			p.err(diag.SynExpectExpression, p.tok.Span,
				"qualified names can only be called; expected '('")
			return nil, false
		}
		return p.parseCall(first, &name)

	case token.LParen:
		return p.parseCall(first, nil)

	default:
		return &ast.Ident{Name: first.Text, Sp: first.Span}, true
	}
}

// parseCall finishes a call once the callee path is known. qualified is nil
// for a local call.
func (p *parser) parseCall(first token.Token, qualified *token.Token) (ast.Expr, bool) {
	call := &ast.CallExpr{Name: first.Text, NameSpan: first.Span}
	if qualified != nil {
		call.Alias = first.Text
		call.AliasSpan = first.Span
		call.Name = qualified.Text
		call.NameSpan = qualified.Span
	}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'('"); !ok {
		return nil, false
	}
	if !p.eat(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			call.Args = append(call.Args, arg)
			if p.eat(token.Comma) {
				continue
			}
			break
		}
		if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "')' after arguments"); !ok {
			return nil, false
		}
	}
	call.Sp = first.Span.Cover(p.prev.Span)
	return call, true
}
