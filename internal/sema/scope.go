package sema

import (
	"cubent/internal/source"
)

type varInfo struct {
	typ  Type
	span source.Span
}

// scope is one lexical block. Lookup walks outward; declare only touches the
// innermost block, so shadowing across blocks works and redeclaring within
// one block is detectable.
type scope struct {
	parent *scope
	vars   map[string]varInfo
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]varInfo)}
}

func (s *scope) declare(name string, typ Type, span source.Span) (prev varInfo, ok bool) {
	if v, exists := s.vars[name]; exists {
		return v, false
	}
	s.vars[name] = varInfo{typ: typ, span: span}
	return varInfo{}, true
}

func (s *scope) lookup(name string) (varInfo, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return varInfo{}, false
}
