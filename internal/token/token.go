package token

import (
	"cubent/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, ByteLit, ShortLit, LongLit, FloatLit, DoubleLit, BoolLit, StringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Assign, EqEq, BangEq, Lt, LtEq, Gt, GtEq,
		AndAnd, OrOr, Colon, Semicolon, Comma, Dot, LParen, RParen, LBrace, RBrace:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwImport, KwAs, KwNamespace, KwFunction, KwMcfunction, KwVar,
		KwIf, KwElse, KwWhile, KwReturn, KwLoad, KwTick:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
