package codegen

import (
	"fmt"

	"cubent/internal/ast"
	"cubent/internal/ir"
	"cubent/internal/sema"
)

func slotName(n int) string { return fmt.Sprintf("v%d", n) }

func (g *funcGen) lowerFunction(d *ast.FuncDecl) {
	result := sema.TVoid
	if d.Result != nil {
		if t, ok := sema.TypeByName(d.Result.Name); ok {
			result = t
		}
	}
	g.result = result
	g.usesDone = blockHasReturn(d.Body)

	g.prologue()

	for i, p := range d.Params {
		t := sema.TAny
		if p.Type != nil {
			if pt, ok := sema.TypeByName(p.Type.Name); ok {
				t = pt
			}
		}
		slot := g.declare(g.scope, p.Name, t)
		g.emit(fmt.Sprintf("data modify storage %s Vars.%s set from storage %s Args[%d]",
			g.storage(), slot.name, runtimeStorage, i))
	}
	if len(d.Params) > 0 {
		g.emit(fmt.Sprintf("data modify storage %s Args set value []", runtimeStorage))
	}

	g.lowerBlockInto(d.Body, g.scope)
}

// lowerHook compiles a load/tick body as a Void function without parameters.
func (g *funcGen) lowerHook(body *ast.BlockStmt) {
	g.result = sema.TVoid
	g.usesDone = blockHasReturn(body)
	g.prologue()
	g.lowerBlockInto(body, g.scope)
}

func (g *funcGen) prologue() {
	fs := g.storage()
	g.emit(fmt.Sprintf("scoreboard objectives add %s dummy", objective))
	g.emit(fmt.Sprintf("execute unless data storage %s Stack run data modify storage %s Stack set value []", fs, fs))
	g.emit(fmt.Sprintf("execute unless data storage %s Vars run data modify storage %s Vars set value {}", fs, fs))
	if g.usesDone {
		g.emit(fmt.Sprintf("data modify storage %s Done set value 0b", fs))
	}
}

func (g *funcGen) lowerBlockInto(b *ast.BlockStmt, sc *varScope) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		g.lowerStmt(s, sc)
	}
}

func (g *funcGen) lowerStmt(s ast.Stmt, sc *varScope) {
	fs := g.storage()

	switch s := s.(type) {
	case *ast.BlockStmt:
		g.lowerBlockInto(s, newVarScope(sc))

	case *ast.VarDeclStmt:
		g.lowerExpr(s.Init, sc)
		t := g.popType()
		slot := g.declare(sc, s.Name, t)
		g.emit(fmt.Sprintf("data modify storage %s Vars.%s set from storage %s Stack[-1]", fs, slot.name, fs))
		g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))

	case *ast.AssignStmt:
		g.lowerExpr(s.Value, sc)
		g.popType()
		slot, _ := sc.lookup(s.Name)
		g.emit(fmt.Sprintf("data modify storage %s Vars.%s set from storage %s Stack[-1]", fs, slot.name, fs))
		g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))

	case *ast.IfStmt:
		g.lowerIf(s, sc)

	case *ast.WhileStmt:
		g.lowerWhile(s, sc)

	case *ast.ReturnStmt:
		g.lowerReturn(s, sc)

	case *ast.ExprStmt:
		depth := len(g.types)
		g.lowerExpr(s.X, sc)
		// A non-Void call in statement position leaves its result behind.
		if len(g.types) > depth {
			g.popType()
			g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))
		}
	}
}

// popCondInto evaluates a condition and moves it into a per-site score
// player. Site players are unique within the function so nested conditions
// never clobber each other.
func (g *funcGen) popCondInto(player string, cond ast.Expr, sc *varScope) {
	fs := g.storage()
	g.lowerExpr(cond, sc)
	g.popType()
	g.emit(fmt.Sprintf("execute store result score %s %s run data get storage %s Stack[-1].Value",
		player, objective, fs))
	g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))
}

func (g *funcGen) lowerIf(s *ast.IfStmt, sc *varScope) {
	fs := g.storage()
	site := g.sites
	g.sites++
	player := fmt.Sprintf("#c%d", site)

	g.popCondInto(player, s.Cond, sc)

	// Site players restart from #c0 in every function, so a call inside the
	// then branch can overwrite them. The else guard reads a snapshot in the
	// function's own storage instead of the score.
	if s.Else != nil {
		g.emit(fmt.Sprintf("execute store result storage %s Cond%d int 1 run scoreboard players get %s %s",
			fs, site, player, objective))
	}

	thenPath := g.buildAux(fmt.Sprintf("if%d", site), func() {
		g.lowerBlockInto(s.Then, newVarScope(sc))
	})
	g.emit(fmt.Sprintf("execute unless score %s %s matches 0 run function %s",
		player, objective, thenPath.Location()))

	if s.Else != nil {
		elsePath := g.buildAux(fmt.Sprintf("else%d", site), func() {
			g.lowerStmt(s.Else, sc)
		})
		g.emit(fmt.Sprintf("execute if data storage %s {Cond%d:0} run function %s",
			fs, site, elsePath.Location()))
		g.emit(fmt.Sprintf("data remove storage %s Cond%d", fs, site))
	}

	if stmtHasReturn(s) {
		g.emit(fmt.Sprintf("execute if data storage %s {Done:1b} run return 1", fs))
	}
}

// lowerWhile emits the loop as a self-reinvoking auxiliary: the parent runs
// the condition once and enters the body function, which re-evaluates the
// condition and tail-calls itself while it holds.
func (g *funcGen) lowerWhile(s *ast.WhileStmt, sc *varScope) {
	fs := g.storage()
	site := g.sites
	g.sites++
	player := fmt.Sprintf("#c%d", site)

	bodyPath := ir.FuncPath{Namespace: g.ns, Name: fmt.Sprintf("%s/while%d", g.name, site)}
	g.buildAuxAt(bodyPath, func() {
		g.lowerBlockInto(s.Body, newVarScope(sc))
		g.popCondInto(player, s.Cond, sc)
		g.emit(fmt.Sprintf("execute unless score %s %s matches 0 run function %s",
			player, objective, bodyPath.Location()))
	})

	g.popCondInto(player, s.Cond, sc)
	g.emit(fmt.Sprintf("execute unless score %s %s matches 0 run function %s",
		player, objective, bodyPath.Location()))

	if blockHasReturn(s.Body) {
		g.emit(fmt.Sprintf("execute if data storage %s {Done:1b} run return 1", fs))
	}
}

func (g *funcGen) lowerReturn(s *ast.ReturnStmt, sc *varScope) {
	fs := g.storage()

	if s.Value != nil {
		g.lowerExpr(s.Value, sc)
		g.popType()
		if g.result == sema.TVoid {
			// Checked programs never reach this; keep the stack balanced.
			g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))
		} else {
			g.emit(fmt.Sprintf("data modify storage %s Ret set from storage %s Stack[-1]",
				runtimeStorage, fs))
			g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))
		}
	}
	g.emit(fmt.Sprintf("data modify storage %s Done set value 1b", fs))
	g.emit("return 1")
}

// buildAux compiles fn's output into a new auxiliary function under the
// current primary, e.g. "faz/if0".
func (g *funcGen) buildAux(suffix string, fn func()) ir.FuncPath {
	path := ir.FuncPath{Namespace: g.ns, Name: g.name + "/" + suffix}
	g.buildAuxAt(path, fn)
	return path
}

func (g *funcGen) buildAuxAt(path ir.FuncPath, fn func()) {
	saved := g.cmds
	g.cmds = nil
	fn()
	g.aux = append(g.aux, &ir.Function{Path: path, Hook: ir.HookNone, Commands: g.cmds})
	g.cmds = saved
}

func blockHasReturn(b *ast.BlockStmt) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Stmts {
		if stmtHasReturn(s) {
			return true
		}
	}
	return false
}

func stmtHasReturn(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BlockStmt:
		return blockHasReturn(s)
	case *ast.IfStmt:
		if blockHasReturn(s.Then) {
			return true
		}
		if s.Else != nil {
			return stmtHasReturn(s.Else)
		}
	case *ast.WhileStmt:
		return blockHasReturn(s.Body)
	}
	return false
}
