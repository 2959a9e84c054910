package codegen

import (
	"fmt"

	"cubent/internal/ast"
	"cubent/internal/sema"
	"cubent/internal/symbols"
	"cubent/internal/token"
)

// lowerExpr pushes the expression's value onto the runtime stack. Calls to
// Void functions are the one exception: they push nothing.
func (g *funcGen) lowerExpr(e ast.Expr, sc *varScope) {
	fs := g.storage()

	switch e := e.(type) {
	case *ast.Literal:
		g.emit(fmt.Sprintf("data modify storage %s Stack append value {Value:%s}",
			fs, nbtLiteral(e.Kind, e.Text)))
		g.pushType(sema.LiteralType(e.Kind))

	case *ast.Ident:
		slot, _ := sc.lookup(e.Name)
		g.emit(fmt.Sprintf("data modify storage %s Stack append from storage %s Vars.%s",
			fs, fs, slot.name))
		g.pushType(slot.typ)

	case *ast.BinaryExpr:
		g.lowerBinary(e, sc)

	case *ast.CallExpr:
		g.lowerCall(e, sc)
	}
}

// popToScore moves the stack top into a score player.
func (g *funcGen) popToScore(player string) {
	fs := g.storage()
	g.emit(fmt.Sprintf("execute store result score %s %s run data get storage %s Stack[-1].Value",
		player, objective, fs))
	g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))
}

// pushScore appends a fresh stack entry holding a score player's value.
func (g *funcGen) pushScore(player, storeType string) {
	fs := g.storage()
	g.emit(fmt.Sprintf("data modify storage %s Stack append value {}", fs))
	g.emit(fmt.Sprintf("execute store result storage %s Stack[-1].Value %s 1 run scoreboard players get %s %s",
		fs, storeType, player, objective))
}

func (g *funcGen) lowerBinary(e *ast.BinaryExpr, sc *varScope) {
	g.lowerExpr(e.X, sc)
	g.lowerExpr(e.Y, sc)
	rt := g.popType()
	lt := g.popType()

	switch e.Op {
	case token.Plus, token.Minus, token.Star, token.Slash:
		g.popToScore(playerB)
		g.popToScore(playerA)
		g.emit(fmt.Sprintf("scoreboard players operation %s %s %s %s %s",
			playerA, objective, arithOp(e.Op), playerB, objective))
		res := sema.TInt
		if lt.IsNumeric() && rt.IsNumeric() {
			res = sema.Wider(lt, rt)
		}
		g.pushScore(playerA, res.StoreType())
		g.pushType(res)

	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		g.popToScore(playerB)
		g.popToScore(playerA)
		g.emit(fmt.Sprintf("execute store success score %s %s if score %s %s %s %s %s",
			playerR, objective, playerA, objective, cmpOp(e.Op), playerB, objective))
		g.pushScore(playerR, "byte")
		g.pushType(sema.TBoolean)

	case token.EqEq, token.BangEq:
		if lt.IsNumeric() && rt.IsNumeric() {
			g.lowerNumericEq(e.Op)
		} else {
			g.lowerStructuralEq(e.Op)
		}
		g.pushType(sema.TBoolean)

	case token.AndAnd, token.OrOr:
		g.popToScore(playerB)
		g.popToScore(playerA)
		// Normalize both operands to 0/1 before combining.
		g.emit(fmt.Sprintf("execute store success score %s %s unless score %s %s matches 0",
			playerA, objective, playerA, objective))
		g.emit(fmt.Sprintf("execute store success score %s %s unless score %s %s matches 0",
			playerB, objective, playerB, objective))
		op := "*="
		if e.Op == token.OrOr {
			op = "+="
		}
		g.emit(fmt.Sprintf("scoreboard players operation %s %s %s %s %s",
			playerA, objective, op, playerB, objective))
		g.emit(fmt.Sprintf("execute store success score %s %s unless score %s %s matches 0",
			playerR, objective, playerA, objective))
		g.pushScore(playerR, "byte")
		g.pushType(sema.TBoolean)
	}
}

func (g *funcGen) lowerNumericEq(op token.Kind) {
	g.popToScore(playerB)
	g.popToScore(playerA)
	word := "if"
	if op == token.BangEq {
		word = "unless"
	}
	g.emit(fmt.Sprintf("execute store success score %s %s %s score %s %s = %s %s",
		playerR, objective, word, playerA, objective, playerB, objective))
	g.pushScore(playerR, "byte")
}

// lowerStructuralEq compares arbitrary NBT values. `data modify ... set from`
// fails when the value is unchanged, so its success score is 1 exactly when
// the operands differ.
func (g *funcGen) lowerStructuralEq(op token.Kind) {
	fs := g.storage()
	g.emit(fmt.Sprintf("execute store success score %s %s run data modify storage %s Stack[-2].Value set from storage %s Stack[-1].Value",
		playerR, objective, fs, fs))
	g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))
	if op == token.EqEq {
		g.emit(fmt.Sprintf("execute store success score %s %s if score %s %s matches 0",
			playerR, objective, playerR, objective))
	}
	g.emit(fmt.Sprintf("data modify storage %s Stack[-1].Value set value 0b", fs))
	g.emit(fmt.Sprintf("execute store result storage %s Stack[-1].Value byte 1 run scoreboard players get %s %s",
		fs, playerR, objective))
}

func arithOp(k token.Kind) string {
	switch k {
	case token.Plus:
		return "+="
	case token.Minus:
		return "-="
	case token.Star:
		return "*="
	}
	return "/="
}

func cmpOp(k token.Kind) string {
	switch k {
	case token.Lt:
		return "<"
	case token.LtEq:
		return "<="
	case token.Gt:
		return ">"
	}
	return ">="
}

func (g *funcGen) lowerCall(e *ast.CallExpr, sc *varScope) {
	fs := g.storage()
	sym := g.resolveCallee(e)
	if sym == nil {
		return
	}

	for _, a := range e.Args {
		g.lowerExpr(a, sc)
	}
	// Transfer arguments so Args[0] is the first parameter: popping from the
	// stack yields them last-first, prepending restores declaration order.
	for i := len(e.Args) - 1; i >= 0; i-- {
		g.popType()
		g.emit(fmt.Sprintf("data modify storage %s Args prepend from storage %s Stack[-1]",
			runtimeStorage, fs))
		g.emit(fmt.Sprintf("data remove storage %s Stack[-1]", fs))
	}

	if sym.Extern() {
		g.emit("function " + sym.Mc.Location)
	} else {
		g.emit(fmt.Sprintf("function %s:%s", sym.Namespace, sym.Name))
	}

	result := sema.TVoid
	if r := sym.Result(); r != nil {
		if t, ok := sema.TypeByName(r.Name); ok {
			result = t
		}
	}
	if result != sema.TVoid {
		g.emit(fmt.Sprintf("data modify storage %s Stack append from storage %s Ret",
			fs, runtimeStorage))
		g.pushType(result)
	}

	// A recursive callee shares this function's storage and leaves Done set
	// after returning; clear it so only our own returns trip the guards.
	if g.usesDone {
		g.emit(fmt.Sprintf("data modify storage %s Done set value 0b", fs))
	}
}

// resolveCallee mirrors the checker's resolution; checking already proved it
// succeeds for programs that reach lowering.
func (g *funcGen) resolveCallee(e *ast.CallExpr) *symbols.FuncSym {
	if e.Alias == "" {
		if sym := g.table.Func(g.ns, e.Name); sym != nil {
			return sym
		}
		if tgt, ok := g.table.Alias(g.file, e.Name); ok && tgt.Func != "" {
			return g.table.Func(tgt.Namespace, tgt.Func)
		}
		return nil
	}
	if tgt, ok := g.table.Alias(g.file, e.Alias); ok && tgt.Func == "" {
		return g.table.Func(tgt.Namespace, e.Name)
	}
	if g.table.HasNamespace(e.Alias) {
		return g.table.Func(e.Alias, e.Name)
	}
	return nil
}
