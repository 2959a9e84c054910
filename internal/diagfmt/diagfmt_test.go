package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cubent/internal/diag"
	"cubent/internal/lexer"
	"cubent/internal/parser"
	"cubent/internal/source"
	"cubent/internal/token"
)

func lexFixture(t *testing.T, src string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cubent", []byte(src)))
	lx := lexer.New(file, lexer.Options{})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, fs
}

func TestFormatTokensPretty(t *testing.T) {
	toks, fs := lexFixture(t, "// header\nvar x = 1;")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"KwVar", "Ident", `"x"`, "IntLit", "LineComment"} {
		if !strings.Contains(out, want) {
			t.Fatalf("pretty token dump missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTokensJSON(t *testing.T) {
	toks, _ := lexFixture(t, "var x = 1;")
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	// var x = 1 ; EOF
	if len(out) != 6 {
		t.Fatalf("token count: got %d", len(out))
	}
	if out[0].Kind != "KwVar" || out[1].Text != "x" {
		t.Fatalf("unexpected head: %+v %+v", out[0], out[1])
	}
}

const astFixture = `
namespace boo {
    function faz(a: Int): Int {
        if (a > 1) {
            return a;
        }
        return boo.faz(a + 1);
    }
}
load { faz(0); }
`

func TestFormatASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cubent", []byte(astFixture)))
	bag := diag.NewBag(64)
	f := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, f, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Namespace boo",
		"Function faz(a: Int): Int",
		"If",
		"Return",
		"Hook load",
		"└─",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("pretty AST dump missing %q:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cubent", []byte(astFixture)))
	bag := diag.NewBag(64)
	f := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, f); err != nil {
		t.Fatal(err)
	}
	var out ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Type != "File" || len(out.Children) != 2 {
		t.Fatalf("root: %+v", out)
	}
	if out.Children[0].Type != "Namespace" || out.Children[0].Text != "boo" {
		t.Fatalf("namespace child: %+v", out.Children[0])
	}
	if out.Children[1].Type != "Hook" || out.Children[1].Text != "load" {
		t.Fatalf("hook child: %+v", out.Children[1])
	}
}

func TestRenderShowsCaretAndNote(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.cubent", []byte("var first = 1;\nvar first = 2;\n"))
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaRedeclaredVariable,
		Message:  "variable first is already declared in this scope",
		Primary:  source.Span{File: id, Start: 19, End: 24},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 4, End: 9}, Msg: "previous declaration here"},
		},
	}

	var buf bytes.Buffer
	Render(&buf, []diag.Diagnostic{d}, fs, false)
	out := buf.String()
	if !strings.Contains(out, "main.cubent:2:5:") {
		t.Fatalf("position header missing:\n%s", out)
	}
	if !strings.Contains(out, "var first = 2;") {
		t.Fatalf("source line missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~") {
		t.Fatalf("caret missing:\n%s", out)
	}
	if !strings.Contains(out, "note: previous declaration here (main.cubent:1:5)") {
		t.Fatalf("note missing:\n%s", out)
	}
}

func TestRenderWithoutFile(t *testing.T) {
	fs := source.NewFileSet()
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "cannot read missing.cubent",
	}
	var buf bytes.Buffer
	Render(&buf, []diag.Diagnostic{d}, fs, false)
	if !strings.Contains(buf.String(), "cannot read missing.cubent") {
		t.Fatalf("message missing:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	diags := []diag.Diagnostic{
		{Severity: diag.SevError},
		{Severity: diag.SevError},
		{Severity: diag.SevWarning},
	}
	if got := Summary(diags); got != "2 error(s), 1 warning(s)" {
		t.Fatalf("summary: %q", got)
	}
	if got := Summary(nil); got != "" {
		t.Fatalf("empty summary: %q", got)
	}
}
