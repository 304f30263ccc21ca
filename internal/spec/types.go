package spec

import (
	"github.com/zclconf/go-cty/cty"
)

// ValueType enumerates the value domains a port or parameter can carry.
//
// float, int, bool and the vector types are connectable and may be backed by
// a uniform. array and string are parameter-only: they never appear on a
// port and are never uniform-backed (arrays become node-local constants,
// strings select codegen behavior inside a template).
type ValueType string

const (
	TypeFloat  ValueType = "float"
	TypeInt    ValueType = "int"
	TypeBool   ValueType = "bool"
	TypeVec2   ValueType = "vec2"
	TypeVec3   ValueType = "vec3"
	TypeVec4   ValueType = "vec4"
	TypeArray  ValueType = "array"
	TypeString ValueType = "string"
)

// vectorRank orders the widening lattice float → vec2 → vec3 → vec4.
// Types absent from the map take no part in promotion.
var vectorRank = map[ValueType]int{
	TypeFloat: 1,
	TypeVec2:  2,
	TypeVec3:  3,
	TypeVec4:  4,
}

// Valid reports whether t is one of the known value types.
func (t ValueType) Valid() bool {
	switch t {
	case TypeFloat, TypeInt, TypeBool, TypeVec2, TypeVec3, TypeVec4, TypeArray, TypeString:
		return true
	}
	return false
}

// Connectable reports whether a port or parameter of this type may be the
// endpoint of a connection.
func (t ValueType) Connectable() bool {
	switch t {
	case TypeFloat, TypeInt, TypeBool, TypeVec2, TypeVec3, TypeVec4:
		return true
	}
	return false
}

// Components returns the number of scalar components carried by the type,
// or 0 when the notion does not apply.
func (t ValueType) Components() int {
	switch t {
	case TypeFloat, TypeInt, TypeBool:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	}
	return 0
}

// PromotesTo reports whether a value of type t widens to type to via one or
// more lattice steps. Identical types are not a promotion.
func (t ValueType) PromotesTo(to ValueType) bool {
	from, ok := vectorRank[t]
	if !ok {
		return false
	}
	dst, ok := vectorRank[to]
	if !ok {
		return false
	}
	return from < dst
}

// AssignableTo reports whether a value of type t may feed an input of type
// to: the types are identical or t promotes to to.
func (t ValueType) AssignableTo(to ValueType) bool {
	return t == to || t.PromotesTo(to)
}

// GLSL returns the GLSL declaration keyword for the type. Parameter-only
// types have no GLSL counterpart and return the empty string.
func (t ValueType) GLSL() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	}
	return ""
}

// ZeroLiteral returns the GLSL literal for the type's zero value.
func (t ValueType) ZeroLiteral() string {
	switch t {
	case TypeFloat:
		return "0.0"
	case TypeInt:
		return "0"
	case TypeBool:
		return "false"
	case TypeVec2:
		return "vec2(0.0)"
	case TypeVec3:
		return "vec3(0.0)"
	case TypeVec4:
		return "vec4(0.0)"
	}
	return ""
}

// ZeroValue returns the cty value used when a parameter of this type has no
// declared default.
func (t ValueType) ZeroValue() cty.Value {
	switch t {
	case TypeFloat, TypeInt:
		return cty.Zero
	case TypeBool:
		return cty.False
	case TypeVec2:
		return cty.TupleVal([]cty.Value{cty.Zero, cty.Zero})
	case TypeVec3:
		return cty.TupleVal([]cty.Value{cty.Zero, cty.Zero, cty.Zero})
	case TypeVec4:
		return cty.TupleVal([]cty.Value{cty.Zero, cty.Zero, cty.Zero, cty.Zero})
	case TypeArray:
		return cty.ListValEmpty(cty.Number)
	case TypeString:
		return cty.StringVal("")
	}
	return cty.NilVal
}

// CtyType returns the cty type used to hold parameter values of this value
// type in graph documents and spec manifests.
func (t ValueType) CtyType() cty.Type {
	switch t {
	case TypeFloat, TypeInt:
		return cty.Number
	case TypeBool:
		return cty.Bool
	case TypeVec2:
		return cty.Tuple([]cty.Type{cty.Number, cty.Number})
	case TypeVec3:
		return cty.Tuple([]cty.Type{cty.Number, cty.Number, cty.Number})
	case TypeVec4:
		return cty.Tuple([]cty.Type{cty.Number, cty.Number, cty.Number, cty.Number})
	case TypeArray:
		return cty.List(cty.Number)
	case TypeString:
		return cty.String
	}
	return cty.NilType
}
