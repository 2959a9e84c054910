package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cubent/internal/source"
	"cubent/internal/token"
)

// TokenOutput is the JSON shape of one token in `cubent tokenize --format json`.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// FormatTokensPretty writes one line per token with its resolved position.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)

		if names := triviaNames(tok.Leading); len(names) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(names, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	var output []TokenOutput
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: triviaNames(tok.Leading),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func triviaNames(leading []token.Trivia) []string {
	var names []string
	for _, tr := range leading {
		if tr.Kind == token.TriviaLineComment || tr.Kind == token.TriviaBlockComment {
			names = append(names, tr.Kind.String())
		}
	}
	return names
}
