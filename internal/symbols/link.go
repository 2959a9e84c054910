package symbols

import (
	"fmt"
	"strings"

	"cubent/internal/ast"
	"cubent/internal/diag"
	"cubent/internal/source"
)

// Link merges parsed files into a Table. Files may reference each other
// freely; import cycles between files are legal because resolution happens
// against the fully collected declaration set.
func Link(files []*ast.File, reporter diag.Reporter) *Table {
	l := &linker{
		table: &Table{
			funcs:      make(map[string]*FuncSym),
			namespaces: make(map[string]bool),
			aliases:    make(map[source.FileID]map[string]AliasTarget),
		},
		reporter: reporter,
	}

	for _, f := range files {
		l.collectFile(f)
	}
	for _, f := range files {
		l.bindImports(f)
	}
	return l.table
}

type linker struct {
	table    *Table
	reporter diag.Reporter
}

func (l *linker) report(code diag.Code, sp source.Span, msg string, notes ...diag.Note) {
	if l.reporter != nil {
		l.reporter.Report(code, diag.SevError, sp, msg, notes)
	}
}

func (l *linker) collectFile(f *ast.File) {
	fileNS := f.Namespace()

	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.NamespaceDecl:
			l.collectNamespace(f, d)
		case *ast.HookDecl:
			if fileNS == nil {
				l.report(diag.LinkHookNeedsNamespace, d.Sp, fmt.Sprintf(
					"a %s block binds to the file's namespace; the file must declare exactly one", d.Kind))
				continue
			}
			l.collectHook(f, fileNS.Name, d)
		}
	}
}

func (l *linker) collectNamespace(f *ast.File, ns *ast.NamespaceDecl) {
	l.table.namespaces[ns.Name] = true

	for _, m := range ns.Decls {
		var sym *FuncSym
		switch m := m.(type) {
		case *ast.FuncDecl:
			sym = &FuncSym{Namespace: ns.Name, Name: m.Name, File: f.FileID, Decl: m}
		case *ast.McFuncDecl:
			sym = &FuncSym{Namespace: ns.Name, Name: m.Name, File: f.FileID, Mc: m}
		default:
			continue
		}
		key := sym.FQN()
		if prev, dup := l.table.funcs[key]; dup {
			l.report(diag.LinkDuplicateDeclaration, sym.NameSpan(),
				fmt.Sprintf("%q is already declared in namespace %q", sym.Name, ns.Name),
				diag.Note{Span: prev.NameSpan(), Msg: "previous declaration here"})
			continue
		}
		l.table.funcs[key] = sym
	}
}

func (l *linker) collectHook(f *ast.File, ns string, d *ast.HookDecl) {
	for _, h := range l.table.hooks {
		if h.Namespace == ns && h.Kind == d.Kind {
			l.report(diag.LinkDuplicateHook, d.Sp,
				fmt.Sprintf("namespace %q already has a %s block", ns, d.Kind),
				diag.Note{Span: h.Sp, Msg: "previous block here"})
			return
		}
	}
	l.table.hooks = append(l.table.hooks, &HookSym{
		Namespace: ns,
		Kind:      d.Kind,
		Body:      d.Body,
		File:      f.FileID,
		Sp:        d.Sp,
	})
}

// bindImports resolves each import against the collected declarations and
// registers the file-local alias. Without an `as` clause the alias is the
// last path segment.
func (l *linker) bindImports(f *ast.File) {
	for _, d := range f.Decls {
		imp, ok := d.(*ast.ImportDecl)
		if !ok {
			continue
		}

		target, ok := l.resolveImport(imp)
		if !ok {
			continue
		}

		alias := imp.Alias
		aliasSpan := imp.AliasSpan
		if alias == "" {
			segs := strings.Split(imp.Path, ".")
			alias = segs[len(segs)-1]
			aliasSpan = imp.PathSpan
		}

		scope := l.table.aliases[f.FileID]
		if scope == nil {
			scope = make(map[string]AliasTarget)
			l.table.aliases[f.FileID] = scope
		}
		if _, dup := scope[alias]; dup {
			l.report(diag.LinkDuplicateDeclaration, aliasSpan,
				fmt.Sprintf("import alias %q is already bound in this file", alias))
			continue
		}
		scope[alias] = target
	}
}

func (l *linker) resolveImport(imp *ast.ImportDecl) (AliasTarget, bool) {
	segs := strings.Split(imp.Path, ".")
	switch len(segs) {
	case 1:
		if l.table.namespaces[segs[0]] {
			return AliasTarget{Namespace: segs[0]}, true
		}
	case 2:
		if l.table.funcs[segs[0]+"."+segs[1]] != nil {
			return AliasTarget{Namespace: segs[0], Func: segs[1]}, true
		}
	}
	l.report(diag.LinkUnresolvedImport, imp.PathSpan,
		fmt.Sprintf("cannot resolve import %q to a namespace or function", imp.Path))
	return AliasTarget{}, false
}
