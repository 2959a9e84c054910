// Package codegen lowers checked functions into Minecraft command lists.
// Each function compiles to an NBT-storage stack machine: expression values
// move through a per-function `Stack` list, variables live in a `Vars`
// compound and scoreboard players carry intermediate arithmetic.
//
// Auxiliary functions for branches and loops get deterministic names
// (`<fn>/if0`, `<fn>/else0`, `<fn>/while1`, ...) so identical input always
// produces an identical pack.
package codegen

import (
	"cubent/internal/ast"
	"cubent/internal/ir"
	"cubent/internal/sema"
	"cubent/internal/source"
	"cubent/internal/symbols"
)

const (
	objective      = "cubent.reg"
	runtimeStorage = "cubent:rt"
	playerA        = "#a"
	playerB        = "#b"
	playerR        = "#r"
)

// Lower generates the full program from a linked and checked table. It must
// only run when checking produced no errors.
func Lower(table *symbols.Table) *ir.Program {
	prog := &ir.Program{}

	for _, sym := range table.Functions() {
		if sym.Decl == nil {
			// Externs ship their own .mcfunction, nothing to generate.
			continue
		}
		g := newFuncGen(table, sym.Namespace, sym.Name, sym.File)
		g.lowerFunction(sym.Decl)
		prog.Functions = append(prog.Functions, g.finish(ir.HookNone)...)
	}

	for _, hook := range table.Hooks() {
		g := newFuncGen(table, hook.Namespace, hook.Kind.String(), hook.File)
		g.lowerHook(hook.Body)
		kind := ir.HookLoad
		if hook.Kind == ast.HookTick {
			kind = ir.HookTick
		}
		prog.Functions = append(prog.Functions, g.finish(kind)...)
	}

	return prog
}

// finish returns the primary function followed by its auxiliaries in
// creation order. The hook kind only marks the primary.
func (g *funcGen) finish(hook ir.Hook) []*ir.Function {
	out := []*ir.Function{{
		Path:     ir.FuncPath{Namespace: g.ns, Name: g.name},
		Hook:     hook,
		Commands: g.cmds,
	}}
	return append(out, g.aux...)
}

// funcGen lowers one function and its auxiliaries.
type funcGen struct {
	table *symbols.Table
	ns    string
	name  string
	file  source.FileID

	cmds []string       // commands of the function currently being written
	aux  []*ir.Function // completed auxiliary functions

	scope    *varScope
	slots    int         // next Vars slot number
	sites    int         // next branch/loop site number
	types    []sema.Type // compile-time types of the runtime value stack
	result   sema.Type
	usesDone bool // the body contains a return statement
}

func newFuncGen(table *symbols.Table, ns, name string, file source.FileID) *funcGen {
	return &funcGen{
		table: table,
		ns:    ns,
		name:  name,
		file:  file,
		scope: newVarScope(nil),
	}
}

// storage returns the function's own NBT storage location.
func (g *funcGen) storage() string {
	return "cubent:" + g.ns + "." + g.name
}

func (g *funcGen) emit(cmd string) {
	g.cmds = append(g.cmds, cmd)
}

// pushType / popType mirror the runtime stack at compile time so stores can
// pick the right NBT width.
func (g *funcGen) pushType(t sema.Type) { g.types = append(g.types, t) }

func (g *funcGen) popType() sema.Type {
	if len(g.types) == 0 {
		return sema.TAny
	}
	t := g.types[len(g.types)-1]
	g.types = g.types[:len(g.types)-1]
	return t
}
