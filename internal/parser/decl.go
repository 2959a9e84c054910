package parser

import (
	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/lexer"
	"cubent/internal/token"
)

// parseNamespace parses `namespace name { member* }`.
func (p *parser) parseNamespace() *ast.NamespaceDecl {
	start := p.tok.Span
	p.advance() // namespace

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "namespace name")
	if !ok {
		p.resyncTopLevel()
		return nil
	}

	d := &ast.NamespaceDecl{Name: name.Text, NameSpan: name.Span}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' after namespace name"); !ok {
		p.resyncTopLevel()
		return nil
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.bailed {
		switch p.tok.Kind {
		case token.KwFunction:
			if m := p.parseFunction(); m != nil {
				d.Decls = append(d.Decls, m)
			}
		case token.KwMcfunction:
			if m := p.parseMcFunction(); m != nil {
				d.Decls = append(d.Decls, m)
			}
		case token.KwLoad, token.KwTick:
			p.err(diag.SynHookOutsideFile, p.tok.Span,
				p.tok.Text+" blocks go at the top level of the file, not inside a namespace")
			p.advance()
			p.skipBalancedBlock()
		default:
			p.err(diag.SynUnexpectedToken, p.tok.Span,
				"expected function or mcfunction, found "+describe(p.tok))
			p.advance()
			p.resyncTopLevel()
		}
	}

	if !p.eat(token.RBrace) {
		p.err(diag.SynUnclosedBrace, p.spanFrom(start), "unclosed namespace block")
	}
	d.Sp = p.spanFrom(start)
	return d
}

// parseHook parses a top-level `load { }` or `tick { }` block.
func (p *parser) parseHook(kind ast.HookKind) *ast.HookDecl {
	start := p.tok.Span
	p.advance() // load / tick

	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.HookDecl{Kind: kind, Body: body, Sp: p.spanFrom(start)}
}

// parseFunction parses `function name(params): Type { body }`.
func (p *parser) parseFunction() *ast.FuncDecl {
	start := p.tok.Span
	p.advance() // function

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "function name")
	if !ok {
		p.resyncTopLevel()
		return nil
	}
	d := &ast.FuncDecl{Name: name.Text, NameSpan: name.Span}

	d.Params, ok = p.parseParamList()
	if !ok {
		p.resyncTopLevel()
		return nil
	}
	d.Result, ok = p.parseResultType()
	if !ok {
		p.resyncTopLevel()
		return nil
	}

	d.Body = p.parseBlock()
	if d.Body == nil {
		return nil
	}
	d.Sp = p.spanFrom(start)
	return d
}

// parseMcFunction parses `mcfunction "ns:path" name(params): Type ;`.
func (p *parser) parseMcFunction() *ast.McFuncDecl {
	start := p.tok.Span
	p.advance() // mcfunction

	loc, ok := p.expect(token.StringLit, diag.SynUnexpectedToken, `target location string like "ns:path"`)
	if !ok {
		p.resyncStmt()
		return nil
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "mcfunction name")
	if !ok {
		p.resyncStmt()
		return nil
	}
	d := &ast.McFuncDecl{
		Location:     lexer.Unquote(loc.Text),
		LocationSpan: loc.Span,
		Name:         name.Text,
		NameSpan:     name.Span,
	}

	d.Params, ok = p.parseParamList()
	if !ok {
		p.resyncStmt()
		return nil
	}
	d.Result, ok = p.parseResultType()
	if !ok {
		p.resyncStmt()
		return nil
	}

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after mcfunction declaration"); !ok {
		p.resyncStmt()
	}
	d.Sp = p.spanFrom(start)
	return d
}

func (p *parser) parseParamList() ([]*ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'('"); !ok {
		return nil, false
	}
	var params []*ast.Param
	if p.eat(token.RParen) {
		return params, true
	}
	for {
		prm, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, prm)
		if p.eat(token.Comma) {
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "')' after parameters"); !ok {
		return nil, false
	}
	return params, true
}

func (p *parser) parseParam() (*ast.Param, bool) {
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "':' after parameter name"); !ok {
		return nil, false
	}
	typ, ok := p.parseTypeRef()
	if !ok {
		return nil, false
	}
	return &ast.Param{
		Name:     name.Text,
		NameSpan: name.Span,
		Type:     typ,
		Sp:       name.Span.Cover(typ.Sp),
	}, true
}

func (p *parser) parseResultType() (*ast.TypeRef, bool) {
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "':' before return type"); !ok {
		return nil, false
	}
	return p.parseTypeRef()
}

func (p *parser) parseTypeRef() (*ast.TypeRef, bool) {
	t, ok := p.expect(token.TypeIdent, diag.SynExpectType, "type name")
	if !ok {
		return nil, false
	}
	return &ast.TypeRef{Name: t.Text, Sp: t.Span}, true
}

// skipBalancedBlock consumes a `{ ... }` group including nested braces. Used
// to step over constructs that are rejected wholesale.
func (p *parser) skipBalancedBlock() {
	if !p.eat(token.LBrace) {
		return
	}
	depth := 1
	for !p.at(token.EOF) && depth > 0 {
		switch p.tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		p.advance()
	}
}
