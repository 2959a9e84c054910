package lexer

import (
	"cubent/internal/diag"
	"cubent/internal/token"
)

// scanNumber scans an NBT-style numeric literal. The optional single-letter
// suffix picks the width: b byte, s short, l long, f float, d double.
// A bare literal is Int when integral and Double when it carries a dot.
func (lx *Lexer) scanNumber() token.Token {
	m := lx.cursor.Mark()
	sawDot := false

	if lx.cursor.Peek() == '.' {
		sawDot = true
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if !sawDot && lx.isNumberAfterDot() {
		sawDot = true
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	kind := token.IntLit
	if sawDot {
		kind = token.DoubleLit
	}

	if !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case 'b', 'B':
			kind = token.ByteLit
			lx.cursor.Bump()
		case 's', 'S':
			kind = token.ShortLit
			lx.cursor.Bump()
		case 'l', 'L':
			kind = token.LongLit
			lx.cursor.Bump()
		case 'f', 'F':
			kind = token.FloatLit
			lx.cursor.Bump()
		case 'd', 'D':
			kind = token.DoubleLit
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(m)
	text := string(lx.file.Content[sp.Start:sp.End])

	// An integral suffix on a fractional body ("1.5b") is malformed, as is a
	// trailing identifier character ("12px").
	if sawDot && (kind == token.ByteLit || kind == token.ShortLit || kind == token.LongLit || kind == token.IntLit) {
		lx.errLex(diag.LexBadNumber, sp, "fractional literal with integer suffix: "+text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	if !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp = lx.cursor.SpanFrom(m)
		text = string(lx.file.Content[sp.Start:sp.End])
		lx.errLex(diag.LexBadNumber, sp, "malformed numeric literal: "+text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	return token.Token{Kind: kind, Span: sp, Text: text}
}
