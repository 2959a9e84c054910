// Package symbols links parsed files into one program: namespaces are merged
// across files, functions get fully-qualified names, hook blocks bind to
// their file's namespace and imports become per-file aliases.
package symbols

import (
	"sort"

	"cubent/internal/ast"
	"cubent/internal/source"
)

// FuncSym is one linked function, either a Cubent function or an extern
// mcfunction declaration.
type FuncSym struct {
	Namespace string
	Name      string
	File      source.FileID

	Decl *ast.FuncDecl   // nil for externs
	Mc   *ast.McFuncDecl // nil for Cubent functions
}

// FQN returns the dotted fully-qualified name, e.g. "boo.faz".
func (s *FuncSym) FQN() string { return s.Namespace + "." + s.Name }

// Extern reports whether the symbol is an mcfunction declaration.
func (s *FuncSym) Extern() bool { return s.Mc != nil }

// Params returns the declared parameters independent of symbol flavor.
func (s *FuncSym) Params() []*ast.Param {
	if s.Mc != nil {
		return s.Mc.Params
	}
	return s.Decl.Params
}

// Result returns the declared result type independent of symbol flavor.
func (s *FuncSym) Result() *ast.TypeRef {
	if s.Mc != nil {
		return s.Mc.Result
	}
	return s.Decl.Result
}

// NameSpan points at the declaration's name for diagnostics.
func (s *FuncSym) NameSpan() source.Span {
	if s.Mc != nil {
		return s.Mc.NameSpan
	}
	return s.Decl.NameSpan
}

// HookSym is a load or tick block bound to its file's namespace.
type HookSym struct {
	Namespace string
	Kind      ast.HookKind
	Body      *ast.BlockStmt
	File      source.FileID
	Sp        source.Span
}

// AliasTarget is what an import alias points at. Func is empty when the
// alias names a whole namespace.
type AliasTarget struct {
	Namespace string
	Func      string
}

// Table is the immutable output of linking. All lookups are read-only and
// safe for concurrent use.
type Table struct {
	funcs      map[string]*FuncSym // key: ns.name
	namespaces map[string]bool
	hooks      []*HookSym
	aliases    map[source.FileID]map[string]AliasTarget
}

// Func looks a function up by namespace and bare name.
func (t *Table) Func(ns, name string) *FuncSym {
	return t.funcs[ns+"."+name]
}

// HasNamespace reports whether any file declared the namespace.
func (t *Table) HasNamespace(name string) bool {
	return t.namespaces[name]
}

// Alias resolves an import alias within one file.
func (t *Table) Alias(file source.FileID, name string) (AliasTarget, bool) {
	tgt, ok := t.aliases[file][name]
	return tgt, ok
}

// Functions returns all linked functions ordered by namespace then name.
func (t *Table) Functions() []*FuncSym {
	out := make([]*FuncSym, 0, len(t.funcs))
	for _, s := range t.funcs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Hooks returns hook blocks ordered by namespace then kind.
func (t *Table) Hooks() []*HookSym {
	out := make([]*HookSym, len(t.hooks))
	copy(out, t.hooks)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Namespaces returns the sorted namespace names.
func (t *Table) Namespaces() []string {
	out := make([]string, 0, len(t.namespaces))
	for ns := range t.namespaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
