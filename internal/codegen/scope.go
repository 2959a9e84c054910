package codegen

import "cubent/internal/sema"

// varScope maps source names to Vars slots. Every declaration gets a fresh
// numbered slot so shadowed variables never share storage at runtime.
type varScope struct {
	parent *varScope
	slots  map[string]varSlot
}

type varSlot struct {
	name string // storage key under Vars, e.g. "v3"
	typ  sema.Type
}

func newVarScope(parent *varScope) *varScope {
	return &varScope{parent: parent, slots: make(map[string]varSlot)}
}

func (s *varScope) lookup(name string) (varSlot, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.slots[name]; ok {
			return v, true
		}
	}
	return varSlot{}, false
}

// declare allocates the next slot for a name in this scope.
func (g *funcGen) declare(s *varScope, name string, t sema.Type) varSlot {
	slot := varSlot{name: slotName(g.slots), typ: t}
	g.slots++
	s.slots[name] = slot
	return slot
}
