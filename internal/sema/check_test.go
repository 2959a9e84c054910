package sema

import (
	"reflect"
	"sort"
	"testing"

	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/parser"
	"cubent/internal/source"
	"cubent/internal/symbols"
)

func checkSources(t *testing.T, srcs map[string]string) *diag.Bag {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}

	paths := make([]string, 0, len(srcs))
	for p := range srcs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var files []*ast.File
	for _, p := range paths {
		file := fs.Get(fs.AddVirtual(p, []byte(srcs[p])))
		files = append(files, parser.ParseFile(file, parser.Options{Reporter: rep}))
	}
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	table := symbols.Link(files, rep)
	if bag.HasErrors() {
		t.Fatalf("link errors: %v", bag.Items())
	}
	Check(table, rep)
	return bag
}

func checkOne(t *testing.T, src string) *diag.Bag {
	t.Helper()
	return checkSources(t, map[string]string{"main.cubent": src})
}

func codesOf(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func wantCode(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("want %v, got %v", code, bag.Items())
}

func TestCleanProgram(t *testing.T) {
	bag := checkOne(t, `
namespace boo {
    function faz(a: Int, b: Int): Int {
        var c = a + b;
        if (c > 10) {
            return c;
        }
        return 0;
    }
}

load {
    boo.faz(1, 2);
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}

func TestUndefinedVariable(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(): Int {
        return missing;
    }
}
`)
	wantCode(t, bag, diag.SemaUndefinedReference)
}

func TestRedeclareInSameBlock(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(): Void {
        var x = 1;
        var x = 2;
    }
}
`)
	wantCode(t, bag, diag.SemaRedeclaredVariable)
}

func TestShadowingAcrossBlocksIsLegal(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(): Void {
        var x = 1;
        {
            var x = 2;
            x = 3;
        }
        x = 4;
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("shadowing must be legal: %v", bag.Items())
	}
}

func TestArityMismatch(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function g(a: Int): Void { }
    function f(): Void {
        g(1, 2);
    }
}
`)
	wantCode(t, bag, diag.SemaArityMismatch)
}

func TestArgumentTypeMismatch(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function g(a: Int): Void { }
    function f(): Void {
        g("nope");
    }
}
`)
	wantCode(t, bag, diag.SemaTypeMismatch)
}

func TestNumericWidthsConvertFreely(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function g(a: Double): Void { }
    function f(): Void {
        g(12b);
        g(3s);
        g(9l);
        g(1.5f);
        g(7);
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("numeric widths must interconvert: %v", bag.Items())
	}
}

func TestVoidReturnValue(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(): Void {
        return 1;
    }
}
`)
	wantCode(t, bag, diag.SemaVoidReturnValue)
}

func TestMissingReturn(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(x: Int): Int {
        if (x > 0) {
            return 1;
        }
    }
}
`)
	wantCode(t, bag, diag.SemaMissingReturn)
}

func TestIfElseBothReturning(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(x: Int): Int {
        if (x > 0) {
            return 1;
        } else {
            return 2;
        }
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("exhaustive if/else must satisfy return analysis: %v", bag.Items())
	}
}

func TestWhileBodyDoesNotTerminate(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(x: Int): Int {
        while (x > 0) {
            return 1;
        }
    }
}
`)
	wantCode(t, bag, diag.SemaMissingReturn)
}

func TestConditionMustBeBooleanContext(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(s: String): Void {
        if (s) { }
    }
}
`)
	wantCode(t, bag, diag.SemaInvalidBoolContext)
}

func TestNumericConditionIsFine(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(x: Int): Void {
        while (x) { }
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("numeric condition converts to Boolean: %v", bag.Items())
	}
}

func TestAnyIsWildcard(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function g(a: Any): Void { }
    function f(): Void {
        g(1);
        g("text");
        g(true);
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("Any must accept everything: %v", bag.Items())
	}
}

func TestCallThroughAliasAndNamespace(t *testing.T) {
	bag := checkSources(t, map[string]string{
		"lib.cubent": `namespace lib { function util(a: Int): Int { return a; } }`,
		"app.cubent": `
import lib as l;
import lib.util;
namespace app {
    function main(): Void {
        l.util(1);
        lib.util(2);
        util(3);
    }
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("all three call forms must resolve: %v", bag.Items())
	}
}

func TestExternMcfunctionCallable(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    mcfunction "n:raw/thing" thing(a: Int): Void;
    function f(): Void {
        thing(1);
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("extern declarations must be callable: %v", bag.Items())
	}
}

func TestVoidCallInExpression(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function g(): Void { }
    function f(): Void {
        var x = g();
    }
}
`)
	wantCode(t, bag, diag.SemaTypeMismatch)
}

func TestUnknownParameterType(t *testing.T) {
	bag := checkOne(t, `
namespace n {
    function f(a: Widget): Void { }
}
`)
	wantCode(t, bag, diag.SemaUnknownType)
}

func TestDiagnosticsIdempotent(t *testing.T) {
	src := map[string]string{
		"main.cubent": `
namespace n {
    function f(): Int {
        var x = missing + 1;
        g(1, 2);
    }
}
`,
	}
	first := codesOf(checkSources(t, src))
	second := codesOf(checkSources(t, src))
	if len(first) == 0 {
		t.Fatal("program must produce diagnostics")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("diagnostics differ across runs:\n%v\n%v", first, second)
	}
}
