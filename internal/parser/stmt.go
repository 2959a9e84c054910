package parser

import (
	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/token"
)

// parseBlock parses `{ statement* }`. Returns nil only when the opening
// brace is missing.
func (p *parser) parseBlock() *ast.BlockStmt {
	start := p.tok.Span
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{'"); !ok {
		return nil
	}
	b := &ast.BlockStmt{}
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.bailed {
		if s := p.parseStmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}
	if !p.eat(token.RBrace) {
		p.err(diag.SynUnclosedBrace, p.spanFrom(start), "unclosed block")
	}
	b.Sp = p.spanFrom(start)
	return b
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case token.KwVar:
		return p.parseVarDecl()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.LBrace:
		return p.parseBlock()
	case token.Ident:
		return p.parseIdentStmt()
	case token.Semicolon:
		// Stray semicolons are tolerated.
		p.advance()
		return nil
	default:
		p.err(diag.SynUnexpectedToken, p.tok.Span,
			"expected statement, found "+describe(p.tok))
		p.advance()
		p.resyncStmt()
		return nil
	}
}

// parseVarDecl parses `var name = expr;`.
func (p *parser) parseVarDecl() ast.Stmt {
	start := p.tok.Span
	p.advance() // var

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "variable name")
	if !ok {
		p.resyncStmt()
		return nil
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "'=' after variable name"); !ok {
		p.resyncStmt()
		return nil
	}
	init, ok := p.parseExpr()
	if !ok {
		p.resyncStmt()
		return nil
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after declaration"); !ok {
		p.resyncStmt()
	}
	return &ast.VarDeclStmt{
		Name:     name.Text,
		NameSpan: name.Span,
		Init:     init,
		Sp:       p.spanFrom(start),
	}
}

// parseIdentStmt disambiguates `name = expr;` from a call statement.
func (p *parser) parseIdentStmt() ast.Stmt {
	start := p.tok.Span
	name := p.tok

	if p.lx.Peek().Kind == token.Assign {
		p.advance() // name
		p.advance() // =
		value, ok := p.parseExpr()
		if !ok {
			p.resyncStmt()
			return nil
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after assignment"); !ok {
			p.resyncStmt()
		}
		return &ast.AssignStmt{
			Name:     name.Text,
			NameSpan: name.Span,
			Value:    value,
			Sp:       p.spanFrom(start),
		}
	}

	x, ok := p.parseExpr()
	if !ok {
		p.resyncStmt()
		return nil
	}
	if _, isCall := x.(*ast.CallExpr); !isCall {
		p.err(diag.SynUnexpectedToken, x.Span(),
			"only calls and assignments can be used as statements")
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after statement"); !ok {
		p.resyncStmt()
	}
	return &ast.ExprStmt{X: x, Sp: p.spanFrom(start)}
}

func (p *parser) parseIf() ast.Stmt {
	start := p.tok.Span
	p.advance() // if

	cond, ok := p.parseParenCond()
	if !ok {
		p.resyncStmt()
		return nil
	}
	then := p.parseBlock()
	if then == nil {
		p.resyncStmt()
		return nil
	}

	s := &ast.IfStmt{Cond: cond, Then: then}
	if p.eat(token.KwElse) {
		switch p.tok.Kind {
		case token.KwIf:
			s.Else = p.parseIf()
		case token.LBrace:
			s.Else = p.parseBlock()
		default:
			p.err(diag.SynUnexpectedToken, p.tok.Span,
				"expected 'if' or '{' after else, found "+describe(p.tok))
			p.resyncStmt()
		}
	}
	s.Sp = p.spanFrom(start)
	return s
}

func (p *parser) parseWhile() ast.Stmt {
	start := p.tok.Span
	p.advance() // while

	cond, ok := p.parseParenCond()
	if !ok {
		p.resyncStmt()
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		p.resyncStmt()
		return nil
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: p.spanFrom(start)}
}

func (p *parser) parseParenCond() (ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'(' before condition"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "')' after condition"); !ok {
		return nil, false
	}
	return cond, true
}

func (p *parser) parseReturn() ast.Stmt {
	start := p.tok.Span
	p.advance() // return

	s := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) {
		value, ok := p.parseExpr()
		if !ok {
			p.resyncStmt()
			return nil
		}
		s.Value = value
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after return"); !ok {
		p.resyncStmt()
	}
	s.Sp = p.spanFrom(start)
	return s
}
