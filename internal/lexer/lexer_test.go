package lexer

import (
	"testing"

	"cubent/internal/diag"
	"cubent/internal/source"
	"cubent/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cubent", []byte(src)))
	bag := diag.NewBag(64)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
		if len(toks) > 10_000 {
			t.Fatal("lexer did not terminate")
		}
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func requireKinds(t *testing.T, got []token.Token, want ...token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("token count: got %d (%v), want %d (%v)", len(gk), gk, len(want), want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token %d: got %v (%q), want %v", i, gk[i], got[i].Text, want[i])
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	toks, bag := lexAll(t, "import namespace function mcfunction var if else while return load tick as foo _bar")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	requireKinds(t, toks,
		token.KwImport, token.KwNamespace, token.KwFunction, token.KwMcfunction,
		token.KwVar, token.KwIf, token.KwElse, token.KwWhile, token.KwReturn,
		token.KwLoad, token.KwTick, token.KwAs, token.Ident, token.Ident,
	)
}

func TestTypeIdentIsCapitalized(t *testing.T) {
	toks, _ := lexAll(t, "Int foo Boolean Custom")
	requireKinds(t, toks, token.TypeIdent, token.Ident, token.TypeIdent, token.TypeIdent)
	if toks[0].Text != "Int" || toks[3].Text != "Custom" {
		t.Fatalf("unexpected texts: %q %q", toks[0].Text, toks[3].Text)
	}
}

func TestBooleanLiterals(t *testing.T) {
	toks, _ := lexAll(t, "true false")
	requireKinds(t, toks, token.BoolLit, token.BoolLit)
}

func TestNumericSuffixes(t *testing.T) {
	toks, bag := lexAll(t, "12 12b 3s 9l 1.5f 2.25d 7f .5 3.25")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	requireKinds(t, toks,
		token.IntLit, token.ByteLit, token.ShortLit, token.LongLit,
		token.FloatLit, token.DoubleLit, token.FloatLit, token.DoubleLit,
		token.DoubleLit,
	)
	if toks[1].Text != "12b" {
		t.Fatalf("suffix must stay in the lexeme, got %q", toks[1].Text)
	}
}

func TestFractionalWithIntegerSuffix(t *testing.T) {
	toks, bag := lexAll(t, "1.5b")
	requireKinds(t, toks, token.Invalid)
	if !bag.HasErrors() {
		t.Fatal("want LexBadNumber")
	}
}

func TestMalformedNumberTail(t *testing.T) {
	toks, bag := lexAll(t, "12px")
	requireKinds(t, toks, token.Invalid)
	if !bag.HasErrors() {
		t.Fatal("want LexBadNumber")
	}
	if toks[0].Text != "12px" {
		t.Fatalf("invalid token should swallow the tail, got %q", toks[0].Text)
	}
}

func TestStringLiterals(t *testing.T) {
	toks, bag := lexAll(t, `"hello" "a\"b" ""`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	requireKinds(t, toks, token.StringLit, token.StringLit, token.StringLit)
	if got := Unquote(toks[1].Text); got != `a"b` {
		t.Fatalf("Unquote: got %q", got)
	}
}

func TestUnterminatedString(t *testing.T) {
	toks, bag := lexAll(t, "\"oops\nvar")
	if !bag.HasErrors() {
		t.Fatal("want LexUnterminatedString")
	}
	requireKinds(t, toks, token.Invalid, token.KwVar)
}

func TestOperatorsAndPunct(t *testing.T) {
	toks, bag := lexAll(t, "+ - * / = == != < <= > >= && || : ; , . ( ) { }")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	requireKinds(t, toks,
		token.Plus, token.Minus, token.Star, token.Slash, token.Assign,
		token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.AndAnd, token.OrOr, token.Colon, token.Semicolon, token.Comma,
		token.Dot, token.LParen, token.RParen, token.LBrace, token.RBrace,
	)
}

func TestUnknownCharacter(t *testing.T) {
	toks, bag := lexAll(t, "@")
	requireKinds(t, toks, token.Invalid)
	if !bag.HasErrors() {
		t.Fatal("want LexUnknownChar")
	}
}

func TestCommentsBecomeTrivia(t *testing.T) {
	toks, bag := lexAll(t, "// line\nvar /* block */ x")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	requireKinds(t, toks, token.KwVar, token.Ident)
	if len(toks[0].Leading) == 0 {
		t.Fatal("var should carry leading trivia")
	}
	var sawLine bool
	for _, tr := range toks[0].Leading {
		if tr.Kind == token.TriviaLineComment {
			sawLine = true
		}
	}
	if !sawLine {
		t.Fatal("line comment missing from leading trivia")
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, bag := lexAll(t, "/* never closed")
	if !bag.HasErrors() {
		t.Fatal("want LexUnterminatedComment")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cubent", []byte("var x")))
	lx := New(file, Options{})
	if got := lx.Peek().Kind; got != token.KwVar {
		t.Fatalf("Peek: got %v", got)
	}
	if got := lx.Next().Kind; got != token.KwVar {
		t.Fatalf("Next after Peek: got %v", got)
	}
	if got := lx.Next().Kind; got != token.Ident {
		t.Fatalf("second Next: got %v", got)
	}
}

func TestSpansCoverLexemes(t *testing.T) {
	toks, _ := lexAll(t, "var count")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 3 {
		t.Fatalf("var span: %v", toks[0].Span)
	}
	if toks[1].Span.Start != 4 || toks[1].Span.End != 9 {
		t.Fatalf("count span: %v", toks[1].Span)
	}
}
