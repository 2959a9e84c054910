// Package parser builds the syntax tree for one source file. Errors are
// reported through a diag.Reporter and the parser recovers at statement
// boundaries, so a single run surfaces every syntax problem it can.
package parser

import (
	"fmt"

	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/lexer"
	"cubent/internal/source"
	"cubent/internal/token"
)

// Options configures a parse run.
type Options struct {
	Reporter diag.Reporter
	// MaxErrors stops the parse after that many syntax errors; 0 means the
	// default of 100.
	MaxErrors int
}

const defaultMaxErrors = 100

type parser struct {
	file *source.File
	lx   *lexer.Lexer
	opts Options

	tok  token.Token // current token
	prev token.Token // last consumed token

	errCount int
	bailed   bool
}

// ParseFile parses the whole file and always returns a tree, possibly
// partial when errors occurred.
func ParseFile(file *source.File, opts Options) *ast.File {
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = defaultMaxErrors
	}
	p := &parser{
		file: file,
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		opts: opts,
	}
	p.advance()
	return p.parseFile()
}

func (p *parser) advance() {
	p.prev = p.tok
	p.tok = p.lx.Next()
}

func (p *parser) at(k token.Kind) bool { return p.tok.Kind == k }

// eat consumes the current token when it matches.
func (p *parser) eat(k token.Kind) bool {
	if p.tok.Kind != k {
		return false
	}
	p.advance()
	return true
}

// expect consumes a token of the wanted kind or reports and returns false
// without consuming.
func (p *parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.tok.Kind == k {
		t := p.tok
		p.advance()
		return t, true
	}
	p.err(code, p.tok.Span, fmt.Sprintf("expected %s, found %s", what, describe(p.tok)))
	return p.tok, false
}

func (p *parser) err(code diag.Code, sp source.Span, msg string) {
	if p.bailed {
		return
	}
	p.errCount++
	if p.errCount > p.opts.MaxErrors {
		p.bailed = true
		return
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.TypeIdent:
		return fmt.Sprintf("%q", t.Text)
	default:
		if t.Text != "" {
			return fmt.Sprintf("%q", t.Text)
		}
		return t.Kind.String()
	}
}

// spanFrom covers from a start span to the end of the last consumed token.
func (p *parser) spanFrom(start source.Span) source.Span {
	end := p.prev.Span.End
	if end < start.Start {
		end = start.End
	}
	return source.Span{File: start.File, Start: start.Start, End: end}
}

// resyncStmt skips to the next statement boundary: past the next `;`, or up
// to a `}` / EOF which the caller handles.
func (p *parser) resyncStmt() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// resyncTopLevel skips to the next plausible top-level keyword.
func (p *parser) resyncTopLevel() {
	for !p.at(token.EOF) {
		switch p.tok.Kind {
		case token.KwImport, token.KwNamespace, token.KwLoad, token.KwTick,
			token.KwFunction, token.KwMcfunction, token.RBrace:
			return
		}
		p.advance()
	}
}
