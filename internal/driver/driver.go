// Package driver wires the pipeline together: load, parse (parallel per
// file), link, check, lower, emit. All diagnostics funnel into one Bag whose
// order is independent of scheduling.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"cubent/internal/ast"
	"cubent/internal/codegen"
	"cubent/internal/diag"
	"cubent/internal/emit"
	"cubent/internal/ir"
	"cubent/internal/parser"
	"cubent/internal/sema"
	"cubent/internal/source"
	"cubent/internal/symbols"
)

// Options configures a pipeline run.
type Options struct {
	// Jobs bounds parse parallelism; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the shared bag; 0 means 256.
	MaxDiagnostics int
	// Sink receives progress events; may be nil.
	Sink Sink
}

const defaultMaxDiagnostics = 256

func (o Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return defaultMaxDiagnostics
}

// Result carries everything later stages or callers may need.
type Result struct {
	FileSet *source.FileSet
	Files   []*ast.File
	Table   *symbols.Table
	Program *ir.Program
	Bag     *diag.Bag
}

// ParseFile loads and parses a single file, for the debug subcommands.
func ParseFile(fs *source.FileSet, path string, bag *diag.Bag) (*ast.File, error) {
	id, err := fs.Load(path)
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  fmt.Sprintf("cannot read %s: %v", path, err),
		})
		return nil, err
	}
	return parser.ParseFile(fs.Get(id), parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	}), nil
}

// ParseAll loads every path into the file set, then parses the files in
// parallel. Files are loaded and merged in input order, so diagnostics and
// tree order never depend on goroutine scheduling.
func ParseAll(ctx context.Context, opts Options, fs *source.FileSet, paths []string, bag *diag.Bag) []*ast.File {
	type slot struct {
		file *source.File
		bag  *diag.Bag
		tree *ast.File
	}
	slots := make([]slot, len(paths))

	// File loading touches the shared FileSet, so it stays serial.
	for i, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOLoadFileError,
				Message:  fmt.Sprintf("cannot read %s: %v", path, err),
			})
			continue
		}
		slots[i].file = fs.Get(id)
		slots[i].bag = diag.NewBag(int(bag.Cap()))
	}

	var done atomic.Int64
	total := len(paths)
	opts.Sink.publish(Event{Stage: StageParse, Status: StatusRunning, Total: total})

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), max(len(paths), 1)))
	for i := range slots {
		i := i
		if slots[i].file == nil {
			continue
		}
		g.Go(func() error {
			slots[i].tree = parser.ParseFile(slots[i].file, parser.Options{
				Reporter: diag.BagReporter{Bag: slots[i].bag},
			})
			opts.Sink.publish(Event{
				Stage:  StageParse,
				Status: StatusRunning,
				Path:   slots[i].file.Path,
				Done:   int(done.Add(1)),
				Total:  total,
			})
			return nil
		})
	}
	_ = g.Wait()

	files := make([]*ast.File, 0, len(paths))
	for i := range slots {
		if slots[i].tree != nil {
			files = append(files, slots[i].tree)
		}
		if slots[i].bag != nil {
			bag.Merge(slots[i].bag)
		}
	}
	opts.Sink.publish(Event{Stage: StageParse, Status: StatusDone, Done: total, Total: total})
	return files
}

// Compile runs the front half of the pipeline: parse, link, check. The
// returned bag is sorted and deduplicated.
func Compile(ctx context.Context, opts Options, paths []string) *Result {
	fs := source.NewFileSet()
	bag := diag.NewBag(opts.maxDiagnostics())
	res := &Result{FileSet: fs, Bag: bag}

	res.Files = ParseAll(ctx, opts, fs, paths, bag)

	opts.Sink.publish(Event{Stage: StageLink, Status: StatusRunning})
	res.Table = symbols.Link(res.Files, diag.BagReporter{Bag: bag})
	opts.Sink.publish(Event{Stage: StageLink, Status: StatusDone})

	opts.Sink.publish(Event{Stage: StageCheck, Status: StatusRunning})
	sema.Check(res.Table, diag.BagReporter{Bag: bag})
	opts.Sink.publish(Event{Stage: StageCheck, Status: StatusDone})

	bag.Sort()
	bag.Dedup()
	return res
}

// Build runs the full pipeline. Lowering and emission only happen when the
// front half produced no errors.
func Build(ctx context.Context, opts Options, paths []string, meta emit.PackMeta, outDir string) *Result {
	res := Compile(ctx, opts, paths)
	if res.Bag.HasErrors() {
		return res
	}

	opts.Sink.publish(Event{Stage: StageLower, Status: StatusRunning})
	res.Program = codegen.Lower(res.Table)
	opts.Sink.publish(Event{Stage: StageLower, Status: StatusDone})

	opts.Sink.publish(Event{Stage: StageEmit, Status: StatusRunning})
	if err := emit.Write(res.Program, meta, outDir); err != nil {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOWriteTreeError,
			Message:  err.Error(),
		})
		opts.Sink.publish(Event{Stage: StageEmit, Status: StatusFailed})
		return res
	}
	opts.Sink.publish(Event{Stage: StageEmit, Status: StatusDone})
	return res
}
