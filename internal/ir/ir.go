// Package ir holds the lowered form of a program: flat Minecraft command
// lists keyed by function path. Values are pure data and never mutated after
// lowering.
package ir

import "fmt"

// FuncPath addresses one emitted function inside the datapack.
type FuncPath struct {
	Namespace string
	// Name may contain '/' segments for auxiliary functions, e.g. "faz/if0".
	Name string
}

// Location renders the in-game function location, e.g. "boo:faz".
func (p FuncPath) Location() string {
	return fmt.Sprintf("%s:%s", p.Namespace, p.Name)
}

// Hook marks functions that run on a game event.
type Hook uint8

const (
	HookNone Hook = iota
	HookLoad
	HookTick
)

func (h Hook) String() string {
	switch h {
	case HookLoad:
		return "load"
	case HookTick:
		return "tick"
	}
	return "none"
}

// Function is one lowered function body.
type Function struct {
	Path     FuncPath
	Hook     Hook
	Commands []string
}

// Program is the full lowered output in deterministic order.
type Program struct {
	Functions []*Function
}
