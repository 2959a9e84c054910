package parser

import (
	"strings"

	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/token"
)

func (p *parser) parseFile() *ast.File {
	f := &ast.File{
		FileID: p.file.ID,
		Path:   p.file.Path,
	}
	start := p.tok.Span

	for p.at(token.KwImport) && !p.bailed {
		if d := p.parseImport(); d != nil {
			f.Decls = append(f.Decls, d)
		}
	}

	for !p.at(token.EOF) && !p.bailed {
		switch p.tok.Kind {
		case token.KwNamespace:
			if d := p.parseNamespace(); d != nil {
				f.Decls = append(f.Decls, d)
			}
		case token.KwLoad:
			if d := p.parseHook(ast.HookLoad); d != nil {
				f.Decls = append(f.Decls, d)
			}
		case token.KwTick:
			if d := p.parseHook(ast.HookTick); d != nil {
				f.Decls = append(f.Decls, d)
			}
		case token.KwImport:
			p.err(diag.SynUnexpectedTopLevel, p.tok.Span,
				"imports must appear before other declarations")
			if d := p.parseImport(); d != nil {
				f.Decls = append(f.Decls, d)
			}
		default:
			p.err(diag.SynUnexpectedTopLevel, p.tok.Span,
				"expected namespace, load or tick, found "+describe(p.tok))
			p.advance()
			p.resyncTopLevel()
			if p.at(token.RBrace) {
				p.advance()
			}
		}
	}

	f.Sp = p.spanFrom(start)
	return f
}

// parseImport parses `import ns(.name)? (as alias)? ;`.
func (p *parser) parseImport() *ast.ImportDecl {
	start := p.tok.Span
	p.advance() // import

	var parts []string
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "imported name")
	if !ok {
		p.resyncStmt()
		return nil
	}
	parts = append(parts, first.Text)
	pathSpan := first.Span
	for p.at(token.Dot) {
		p.advance()
		seg, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "name after '.'")
		if !ok {
			p.resyncStmt()
			return nil
		}
		parts = append(parts, seg.Text)
		pathSpan = pathSpan.Cover(seg.Span)
	}

	d := &ast.ImportDecl{
		Path:     strings.Join(parts, "."),
		PathSpan: pathSpan,
	}

	if p.eat(token.KwAs) {
		alias, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "import alias")
		if !ok {
			p.resyncStmt()
			return nil
		}
		d.Alias = alias.Text
		d.AliasSpan = alias.Span
	}

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';' after import"); !ok {
		p.resyncStmt()
	}
	d.Sp = p.spanFrom(start)
	return d
}
