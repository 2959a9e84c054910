package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"
	"testing"

	"cubent/internal/diag"
	"cubent/internal/emit"
	"cubent/internal/source"
)

func writeSources(t *testing.T, srcs map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range srcs {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	// Input order mirrors discovery order: sorted.
	sort.Strings(paths)
	return dir, paths
}

const mainSrc = `
import boo.faz as add;

namespace app {
    function main(): Void {
        add(1, 2);
    }
}

load {
    main();
}
`

const libSrc = `
namespace boo {
    function faz(a: Int, b: Int): Int {
        return a + b;
    }
}
`

func TestCompileClean(t *testing.T) {
	_, paths := writeSources(t, map[string]string{
		"app.cubent": mainSrc,
		"boo.cubent": libSrc,
	})
	res := Compile(context.Background(), Options{Jobs: 4}, paths)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if res.Table.Func("boo", "faz") == nil || res.Table.Func("app", "main") == nil {
		t.Fatal("linked table incomplete")
	}
}

func TestDiagnosticsIndependentOfJobs(t *testing.T) {
	srcs := map[string]string{
		"a.cubent": `namespace a { function f(): Int { return missing; } }`,
		"b.cubent": `namespace b { function g(): Void { undefined(); } }`,
		"c.cubent": `namespace c { function h(: Void { }`,
	}
	_, paths := writeSources(t, srcs)

	render := func(jobs int) string {
		res := Compile(context.Background(), Options{Jobs: jobs}, paths)
		return diag.FormatShort(res.Bag.Items(), res.FileSet)
	}

	serial := render(1)
	parallel := render(8)
	if serial == "" {
		t.Fatal("expected diagnostics")
	}
	if serial != parallel {
		t.Fatalf("diagnostic order depends on parallelism:\n--- jobs=1\n%s\n--- jobs=8\n%s", serial, parallel)
	}
}

func TestMissingFileBecomesIODiagnostic(t *testing.T) {
	res := Compile(context.Background(), Options{}, []string{"/nonexistent/ghost.cubent"})
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.IOLoadFileError {
			found = true
		}
	}
	if !found {
		t.Fatalf("want IOLoadFileError, got %v", res.Bag.Items())
	}
}

func TestBuildEmitsPack(t *testing.T) {
	dir, paths := writeSources(t, map[string]string{
		"app.cubent": mainSrc,
		"boo.cubent": libSrc,
	})
	out := filepath.Join(dir, "dist")
	res := Build(context.Background(), Options{}, paths,
		emit.PackMeta{Description: "test", PackFormat: 48}, out)
	if res.Bag.HasErrors() {
		t.Fatalf("build errors: %v", res.Bag.Items())
	}
	if res.Program == nil {
		t.Fatal("program missing")
	}
	if _, err := os.Stat(filepath.Join(out, "data", "boo", "functions", "faz.mcfunction")); err != nil {
		t.Fatalf("emitted function missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "data", "minecraft", "tags", "functions", "load.json")); err != nil {
		t.Fatalf("load tag missing: %v", err)
	}
}

func TestBuildSkipsEmissionOnErrors(t *testing.T) {
	dir, paths := writeSources(t, map[string]string{
		"bad.cubent": `namespace n { function f(): Int { return missing; } }`,
	})
	out := filepath.Join(dir, "dist")
	res := Build(context.Background(), Options{}, paths,
		emit.PackMeta{Description: "test", PackFormat: 48}, out)
	if !res.Bag.HasErrors() {
		t.Fatal("expected errors")
	}
	if res.Program != nil {
		t.Fatal("lowering must not run on broken input")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatal("output tree must not exist after a failed build")
	}
}

func TestBuildDeterministic(t *testing.T) {
	_, paths := writeSources(t, map[string]string{
		"app.cubent": mainSrc,
		"boo.cubent": libSrc,
	})
	first := Build(context.Background(), Options{Jobs: 1}, paths,
		emit.PackMeta{Description: "test", PackFormat: 48}, filepath.Join(t.TempDir(), "a"))
	second := Build(context.Background(), Options{Jobs: 8}, paths,
		emit.PackMeta{Description: "test", PackFormat: 48}, filepath.Join(t.TempDir(), "b"))
	if !reflect.DeepEqual(first.Program, second.Program) {
		t.Fatal("lowered program must not depend on parallelism")
	}
}

func TestProgressEvents(t *testing.T) {
	_, paths := writeSources(t, map[string]string{
		"app.cubent": mainSrc,
		"boo.cubent": libSrc,
	})

	var mu sync.Mutex
	var events []Event
	sink := func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}

	res := Build(context.Background(), Options{Sink: sink}, paths,
		emit.PackMeta{Description: "test", PackFormat: 48}, filepath.Join(t.TempDir(), "pack"))
	if res.Bag.HasErrors() {
		t.Fatalf("build errors: %v", res.Bag.Items())
	}

	seen := map[Stage]bool{}
	for _, e := range events {
		if e.Status == StatusDone {
			seen[e.Stage] = true
		}
	}
	for _, stage := range []Stage{StageParse, StageLink, StageCheck, StageLower, StageEmit} {
		if !seen[stage] {
			t.Fatalf("missing done event for stage %s; events: %v", stage, events)
		}
	}
}

func TestParseFileDebugEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.cubent")
	if err := os.WriteFile(path, []byte(libSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	bag := diag.NewBag(16)
	tree, err := ParseFile(fs, path, bag)
	if err != nil || tree == nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
}
