package lexer

import (
	"cubent/internal/token"
)

// scanIdentOrKeyword scans an identifier, a keyword, a boolean literal or a
// type name. Names starting with an uppercase letter are type identifiers;
// everything else goes through the keyword table first.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	m := lx.cursor.Mark()
	first := lx.cursor.Bump()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(m)
	text := string(lx.file.Content[sp.Start:sp.End])

	kind := token.Ident
	switch {
	case isUpper(first):
		kind = token.TypeIdent
	default:
		if kw, ok := token.LookupKeyword(text); ok {
			kind = kw
		}
	}

	return token.Token{Kind: kind, Span: sp, Text: text}
}
