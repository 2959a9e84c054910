package parser

import (
	"testing"

	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/source"
	"cubent/internal/token"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cubent", []byte(src)))
	bag := diag.NewBag(64)
	f := ParseFile(file, Options{Reporter: diag.BagReporter{Bag: bag}})
	if f == nil {
		t.Fatal("ParseFile returned nil")
	}
	return f, bag
}

func mustClean(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	return f
}

func TestParseFullProgram(t *testing.T) {
	f := mustClean(t, `
import other.helper as h;

namespace boo {
    function faz(a: Int, b: Int): Int {
        var c = a + b;
        return c;
    }

    mcfunction "boo:raw/setup" setup(): Void;
}

load {
    boo.faz(1, 2);
}

tick {
    h(3, 4);
}
`)
	if len(f.Decls) != 4 {
		t.Fatalf("decl count: got %d", len(f.Decls))
	}

	imp, ok := f.Decls[0].(*ast.ImportDecl)
	if !ok || imp.Path != "other.helper" || imp.Alias != "h" {
		t.Fatalf("import: %+v", f.Decls[0])
	}

	ns, ok := f.Decls[1].(*ast.NamespaceDecl)
	if !ok || ns.Name != "boo" || len(ns.Decls) != 2 {
		t.Fatalf("namespace: %+v", f.Decls[1])
	}
	fn, ok := ns.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Name != "faz" || len(fn.Params) != 2 || fn.Result.Name != "Int" {
		t.Fatalf("function: %+v", ns.Decls[0])
	}
	mc, ok := ns.Decls[1].(*ast.McFuncDecl)
	if !ok || mc.Location != "boo:raw/setup" || mc.Name != "setup" || mc.Result.Name != "Void" {
		t.Fatalf("mcfunction: %+v", ns.Decls[1])
	}

	loadD, ok := f.Decls[2].(*ast.HookDecl)
	if !ok || loadD.Kind != ast.HookLoad || len(loadD.Body.Stmts) != 1 {
		t.Fatalf("load hook: %+v", f.Decls[2])
	}
	tickD, ok := f.Decls[3].(*ast.HookDecl)
	if !ok || tickD.Kind != ast.HookTick {
		t.Fatalf("tick hook: %+v", f.Decls[3])
	}
}

func TestImportsOnlyFileIsValid(t *testing.T) {
	f := mustClean(t, `import a; import b.c as d;`)
	if len(f.Decls) != 2 {
		t.Fatalf("decl count: got %d", len(f.Decls))
	}
}

func TestPrecedence(t *testing.T) {
	f := mustClean(t, `
namespace n {
    function p(): Int {
        return 1 + 2 * 3 == 7 && true || false;
    }
}
`)
	ns := f.Decls[0].(*ast.NamespaceDecl)
	fn := ns.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)

	// (((1 + (2*3)) == 7) && true) || false
	or := ret.Value.(*ast.BinaryExpr)
	if or.Op != token.OrOr {
		t.Fatalf("top op: %v", or.Op)
	}
	and := or.X.(*ast.BinaryExpr)
	if and.Op != token.AndAnd {
		t.Fatalf("second op: %v", and.Op)
	}
	eq := and.X.(*ast.BinaryExpr)
	if eq.Op != token.EqEq {
		t.Fatalf("third op: %v", eq.Op)
	}
	add := eq.X.(*ast.BinaryExpr)
	if add.Op != token.Plus {
		t.Fatalf("fourth op: %v", add.Op)
	}
	mul := add.Y.(*ast.BinaryExpr)
	if mul.Op != token.Star {
		t.Fatalf("mul under add: %v", mul.Op)
	}
}

func TestLeftAssociativity(t *testing.T) {
	f := mustClean(t, `
namespace n {
    function p(): Int {
        return 10 - 3 - 2;
    }
}
`)
	ns := f.Decls[0].(*ast.NamespaceDecl)
	fn := ns.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)

	outer := ret.Value.(*ast.BinaryExpr)
	if outer.Op != token.Minus {
		t.Fatalf("outer: %v", outer.Op)
	}
	inner, ok := outer.X.(*ast.BinaryExpr)
	if !ok || inner.Op != token.Minus {
		t.Fatalf("minus must nest on the left: %+v", outer.X)
	}
}

func TestElseIfChain(t *testing.T) {
	f := mustClean(t, `
namespace n {
    function p(x: Int): Int {
        if (x == 1) { return 1; } else if (x == 2) { return 2; } else { return 3; }
    }
}
`)
	ns := f.Decls[0].(*ast.NamespaceDecl)
	fn := ns.Decls[0].(*ast.FuncDecl)
	ifs := fn.Body.Stmts[0].(*ast.IfStmt)
	second, ok := ifs.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("else-if must nest as IfStmt: %+v", ifs.Else)
	}
	if _, ok := second.Else.(*ast.BlockStmt); !ok {
		t.Fatalf("final else must be a block: %+v", second.Else)
	}
}

func TestStatementRecovery(t *testing.T) {
	f, bag := parseSrc(t, `
namespace n {
    function p(): Void {
        var = 1;
        var ok = 2;
        ok = ;
        ok = 3;
    }
}
`)
	if bag.Len() < 2 {
		t.Fatalf("want multiple diagnostics from one pass, got %d", bag.Len())
	}
	ns := f.Decls[0].(*ast.NamespaceDecl)
	fn := ns.Decls[0].(*ast.FuncDecl)
	// The two good statements must survive recovery.
	good := 0
	for _, s := range fn.Body.Stmts {
		switch s.(type) {
		case *ast.VarDeclStmt, *ast.AssignStmt:
			good++
		}
	}
	if good != 2 {
		t.Fatalf("recovered statements: got %d, want 2", good)
	}
}

func TestHookInsideNamespaceRejected(t *testing.T) {
	_, bag := parseSrc(t, `
namespace n {
    load { }
}
`)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynHookOutsideFile {
			found = true
		}
	}
	if !found {
		t.Fatalf("want SynHookOutsideFile, got %v", bag.Items())
	}
}

func TestOnlyCallsAsStatements(t *testing.T) {
	_, bag := parseSrc(t, `
namespace n {
    function p(): Void {
        1 + 2;
    }
}
`)
	if !bag.HasErrors() {
		t.Fatal("bare arithmetic expression statement must be rejected")
	}
}

func TestQualifiedNameNeedsCall(t *testing.T) {
	_, bag := parseSrc(t, `
namespace n {
    function p(): Int {
        return a.b;
    }
}
`)
	if !bag.HasErrors() {
		t.Fatal("dotted path outside a call must be rejected")
	}
}

func TestImportAfterDeclIsFlagged(t *testing.T) {
	f, bag := parseSrc(t, `
namespace n { }
import late;
`)
	if !bag.HasErrors() {
		t.Fatal("late import must be flagged")
	}
	// Still parsed so later phases see it.
	hasImport := false
	for _, d := range f.Decls {
		if _, ok := d.(*ast.ImportDecl); ok {
			hasImport = true
		}
	}
	if !hasImport {
		t.Fatal("late import should still be in the tree")
	}
}

func TestFileNamespaceHelper(t *testing.T) {
	f := mustClean(t, `namespace one { } `)
	if ns := f.Namespace(); ns == nil || ns.Name != "one" {
		t.Fatalf("Namespace(): %+v", ns)
	}
	f2 := mustClean(t, `namespace one { } namespace two { }`)
	if ns := f2.Namespace(); ns != nil {
		t.Fatalf("two namespaces must yield nil, got %+v", ns)
	}
}
