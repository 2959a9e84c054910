// Package sema type-checks the linked program: variable scoping, call
// signatures, condition types and return paths.
package sema

import (
	"cubent/internal/ast"
	"cubent/internal/token"
)

// Type is one of the built-in Cubent types.
type Type uint8

const (
	TInvalid Type = iota
	TVoid
	TAny
	TBoolean
	TByte
	TShort
	TInt
	TLong
	TFloat
	TDouble
	TString
)

var typeNames = map[Type]string{
	TInvalid: "<invalid>",
	TVoid:    "Void",
	TAny:     "Any",
	TBoolean: "Boolean",
	TByte:    "Byte",
	TShort:   "Short",
	TInt:     "Int",
	TLong:    "Long",
	TFloat:   "Float",
	TDouble:  "Double",
	TString:  "String",
}

func (t Type) String() string { return typeNames[t] }

// TypeByName resolves a source-level type name.
func TypeByName(name string) (Type, bool) {
	switch name {
	case "Void":
		return TVoid, true
	case "Any":
		return TAny, true
	case "Boolean":
		return TBoolean, true
	case "Byte":
		return TByte, true
	case "Short":
		return TShort, true
	case "Int":
		return TInt, true
	case "Long":
		return TLong, true
	case "Float":
		return TFloat, true
	case "Double":
		return TDouble, true
	case "String":
		return TString, true
	}
	return TInvalid, false
}

// IsNumeric reports whether t is one of the six numeric widths.
func (t Type) IsNumeric() bool {
	return t >= TByte && t <= TDouble
}

// numericRank orders numeric widths for result widening.
func numericRank(t Type) int { return int(t) }

// wider picks the wider of two numeric types.
func wider(a, b Type) Type {
	if numericRank(a) >= numericRank(b) {
		return a
	}
	return b
}

// ConvertibleTo reports whether a value of type t can be passed where dst is
// expected. Any converts both ways, numerics convert freely between widths,
// and numerics convert to Boolean (zero is false).
func (t Type) ConvertibleTo(dst Type) bool {
	if t == TInvalid || dst == TInvalid {
		// Error recovery: an invalid type converts anywhere so one mistake
		// produces one diagnostic.
		return true
	}
	if t == dst || t == TAny || dst == TAny {
		return true
	}
	if t.IsNumeric() && dst.IsNumeric() {
		return true
	}
	if t.IsNumeric() && dst == TBoolean {
		return true
	}
	if t == TBoolean && dst.IsNumeric() {
		return true
	}
	return false
}

// BooleanContext reports whether t may appear as a condition.
func (t Type) BooleanContext() bool {
	return t.ConvertibleTo(TBoolean)
}

// LiteralType maps a literal token kind to its type. Exposed for the code
// generator, which tracks value types to pick NBT storage widths.
func LiteralType(k token.Kind) Type { return literalType(k) }

// Wider picks the wider of two numeric types. Exposed for the code generator.
func Wider(a, b Type) Type { return wider(a, b) }

// StoreType returns the NBT numeric type used with `execute store` for
// values of this type.
func (t Type) StoreType() string {
	switch t {
	case TByte, TBoolean:
		return "byte"
	case TShort:
		return "short"
	case TLong:
		return "long"
	case TFloat:
		return "float"
	case TDouble:
		return "double"
	default:
		return "int"
	}
}

// literalType maps a literal token kind to its type.
func literalType(k token.Kind) Type {
	switch k {
	case token.IntLit:
		return TInt
	case token.ByteLit:
		return TByte
	case token.ShortLit:
		return TShort
	case token.LongLit:
		return TLong
	case token.FloatLit:
		return TFloat
	case token.DoubleLit:
		return TDouble
	case token.BoolLit:
		return TBoolean
	case token.StringLit:
		return TString
	}
	return TInvalid
}

// resolveTypeRef maps a parsed type reference, nil-safe for recovery trees.
func resolveTypeRef(ref *ast.TypeRef) (Type, bool) {
	if ref == nil {
		return TInvalid, false
	}
	return TypeByName(ref.Name)
}
