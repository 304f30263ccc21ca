// Package color provides the color-space and blending nodes of the builtin
// catalog.
package color

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// hsvHelper carries no per-instance slots, so every hsv instance renders
// the identical text and the subroutine collector collapses them to one
// function definition.
const hsvHelper = `vec3 hsv2rgb(vec3 c) {
    vec4 K = vec4(1.0, 2.0 / 3.0, 1.0 / 3.0, 3.0);
    vec3 p = abs(fract(c.xxx + K.xyz) * 6.0 - K.www);
    return c.z * mix(K.xxx, clamp(p - K.xxx, 0.0, 1.0), c.y);
}`

// Register registers the color node specs with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&spec.NodeSpec{
		Type:     "hsv",
		Category: spec.CategoryColor,
		Inputs: []spec.PortDef{
			{Name: "h", Type: spec.TypeFloat},
			{Name: "s", Type: spec.TypeFloat},
			{Name: "v", Type: spec.TypeFloat},
		},
		Outputs:    []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Subroutine: spec.MustParse(hsvHelper),
		Main:       spec.MustParse("$out.color = hsv2rgb(vec3(fract($in.h), $in.s, $in.v));"),
	})

	r.Register(&spec.NodeSpec{
		Type:     "levels",
		Category: spec.CategoryColor,
		Inputs:   []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Outputs:  []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Params: []spec.ParamDef{
			{Name: "gain", Type: spec.TypeFloat, Default: cty.NumberFloatVal(1), Min: ptr(0), Max: ptr(4), Mode: spec.ModeMultiply},
			{Name: "offset", Type: spec.TypeFloat, Default: cty.NumberFloatVal(0), Min: ptr(-1), Max: ptr(1), Mode: spec.ModeAdd},
		},
		Main: spec.MustParse("$out.color = clamp($in.color * $param.gain + vec3($param.offset), 0.0, 1.0);"),
	})

	// blend's op parameter is a string: it is substituted as literal
	// operator text at compile time and never becomes a uniform.
	r.Register(&spec.NodeSpec{
		Type:     "blend",
		Category: spec.CategoryColor,
		Inputs: []spec.PortDef{
			{Name: "a", Type: spec.TypeVec3},
			{Name: "b", Type: spec.TypeVec3},
		},
		Outputs: []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Params: []spec.ParamDef{{
			Name:    "op",
			Type:    spec.TypeString,
			Default: cty.StringVal("+"),
		}},
		Main: spec.MustParse("$out.color = clamp($in.a $param.op $in.b, 0.0, 1.0);"),
	})
}

func ptr(f float64) *float64 { return &f }
