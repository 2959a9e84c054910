package lexer

import (
	"cubent/internal/diag"
	"cubent/internal/token"
)

// collectLeadingTrivia consumes whitespace and comments in front of the next
// significant token and stores them in lx.hold.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t':
			lx.scanSpaces()
		case b == '\n' || b == '\r':
			lx.scanNewlines()
		case b == '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' {
				return
			}
			switch b1 {
			case '/':
				lx.scanLineComment()
			case '*':
				lx.scanBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanSpaces() {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		lx.cursor.Bump()
	}
	lx.pushTrivia(token.TriviaSpace, m)
}

func (lx *Lexer) scanNewlines() {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b != '\n' && b != '\r' {
			break
		}
		lx.cursor.Bump()
	}
	lx.pushTrivia(token.TriviaNewline, m)
}

func (lx *Lexer) scanLineComment() {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.pushTrivia(token.TriviaLineComment, m)
}

func (lx *Lexer) scanBlockComment() {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	closed := false
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	if !closed {
		lx.errLex(diag.LexUnterminatedComment, lx.cursor.SpanFrom(m), "unterminated block comment")
	}
	lx.pushTrivia(token.TriviaBlockComment, m)
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, m Mark) {
	sp := lx.cursor.SpanFrom(m)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
