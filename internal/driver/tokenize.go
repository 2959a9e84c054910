package driver

import (
	"fmt"

	"cubent/internal/diag"
	"cubent/internal/lexer"
	"cubent/internal/source"
	"cubent/internal/token"
)

// TokenizeResult carries the token stream of a single file.
type TokenizeResult struct {
	FileSet *source.FileSet
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file end to end, for the tokenize subcommand.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)

	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	lx := lexer.New(fs.Get(id), lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{FileSet: fs, Tokens: toks, Bag: bag}, nil
}
