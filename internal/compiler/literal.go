package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/shadegrid/internal/spec"
)

// floatLiteral formats f as a GLSL float literal. The shortest exact
// decimal form is used, with a forced decimal point so the literal never
// degrades to an int.
func floatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// fixedLiteral formats f with fixed precision, used for constant array
// elements so array initializers stay column-stable across compiles.
func fixedLiteral(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// ctyFloat extracts a float64 from a cty number.
func ctyFloat(v cty.Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

// valueLiteral renders a parameter value as a GLSL literal of the given
// value type. The value must already be convertible to the type's cty type;
// non-convertible values fall back to the type's zero literal, since
// parameter values are advisory data the validator does not police.
func valueLiteral(v cty.Value, t spec.ValueType) string {
	if v == cty.NilVal {
		return t.ZeroLiteral()
	}
	converted, err := convert.Convert(v, t.CtyType())
	if err != nil {
		return t.ZeroLiteral()
	}

	switch t {
	case spec.TypeFloat:
		return floatLiteral(ctyFloat(converted))
	case spec.TypeInt:
		f := ctyFloat(converted)
		return strconv.FormatInt(int64(f), 10)
	case spec.TypeBool:
		if converted.True() {
			return "true"
		}
		return "false"
	case spec.TypeVec2, spec.TypeVec3, spec.TypeVec4:
		parts := make([]string, 0, t.Components())
		for it := converted.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			parts = append(parts, floatLiteral(ctyFloat(ev)))
		}
		return fmt.Sprintf("%s(%s)", t.GLSL(), strings.Join(parts, ", "))
	}
	return t.ZeroLiteral()
}

// promoteExpr wraps expr, a value of type from, in a widening expression of
// type to. Scalars broadcast to every component; vectors keep their
// components, zero-fill new channels, and set a newly added fourth channel
// to 1 so color alpha defaults to opaque. Callers guarantee from promotes
// to to.
func promoteExpr(expr string, from, to spec.ValueType) string {
	if from == to {
		return expr
	}
	if from == spec.TypeFloat {
		return fmt.Sprintf("%s(%s)", to.GLSL(), expr)
	}
	switch {
	case from == spec.TypeVec2 && to == spec.TypeVec3:
		return fmt.Sprintf("vec3(%s, 0.0)", expr)
	case from == spec.TypeVec2 && to == spec.TypeVec4:
		return fmt.Sprintf("vec4(%s, 0.0, 1.0)", expr)
	case from == spec.TypeVec3 && to == spec.TypeVec4:
		return fmt.Sprintf("vec4(%s, 1.0)", expr)
	}
	// Unreachable for lattice-checked connections.
	return expr
}

// colorExpr converts expr, a value of type t, into a three-component color
// expression: vec4 drops alpha, vec3 passes through, vec2 zero-fills the
// third channel, scalars broadcast to grayscale.
func colorExpr(expr string, t spec.ValueType) string {
	switch t {
	case spec.TypeVec4:
		return expr + ".rgb"
	case spec.TypeVec3:
		return expr
	case spec.TypeVec2:
		return fmt.Sprintf("vec3(%s, 0.0)", expr)
	case spec.TypeFloat:
		return fmt.Sprintf("vec3(%s)", expr)
	case spec.TypeInt:
		return fmt.Sprintf("vec3(float(%s))", expr)
	case spec.TypeBool:
		return fmt.Sprintf("vec3(%s ? 1.0 : 0.0)", expr)
	}
	return "vec3(0.0)"
}
