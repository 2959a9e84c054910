package token

import "cubent/internal/source"

// TriviaKind classifies whitespace and comments preceding a token.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	default:
		return "Unknown"
	}
}

// Trivia is a run of whitespace or a comment attached to the next token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
