// Package mathx provides the arithmetic and signal-shaping nodes of the
// builtin catalog.
package mathx

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func num(f float64) cty.Value { return cty.NumberFloatVal(f) }

// Register registers the math node specs with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&spec.NodeSpec{
		Type:     "add",
		Category: spec.CategoryMath,
		Inputs: []spec.PortDef{
			{Name: "a", Type: spec.TypeFloat},
			{Name: "b", Type: spec.TypeFloat},
		},
		Outputs: []spec.PortDef{{Name: "result", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{{
			Name:    "gain",
			Type:    spec.TypeFloat,
			Default: num(1),
			Mode:    spec.ModeMultiply,
		}},
		Main: spec.MustParse("$out.result = ($in.a + $in.b) * $param.gain;"),
	})

	r.Register(&spec.NodeSpec{
		Type:     "multiply",
		Category: spec.CategoryMath,
		Inputs: []spec.PortDef{
			{Name: "a", Type: spec.TypeFloat},
			{Name: "b", Type: spec.TypeFloat},
		},
		Outputs: []spec.PortDef{{Name: "result", Type: spec.TypeFloat}},
		Main:    spec.MustParse("$out.result = $in.a * $in.b;"),
	})

	r.Register(&spec.NodeSpec{
		Type:     "oscillator",
		Category: spec.CategoryMath,
		Inputs:   []spec.PortDef{{Name: "offset", Type: spec.TypeFloat}},
		Outputs:  []spec.PortDef{{Name: "wave", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{
			{Name: "frequency", Type: spec.TypeFloat, Default: num(1), Min: ptr(0.01), Max: ptr(40), Mode: spec.ModeAdd},
			{Name: "amplitude", Type: spec.TypeFloat, Default: num(1), Min: ptr(0), Max: ptr(4), Mode: spec.ModeMultiply},
			{Name: "phase", Type: spec.TypeFloat, Default: num(0), Mode: spec.ModeAdd},
		},
		Main: spec.MustParse(
			"$out.wave = sin(6.2831853 * $param.frequency * ($time + $in.offset) + $param.phase) * $param.amplitude;"),
	})

	r.Register(&spec.NodeSpec{
		Type:     "mix",
		Category: spec.CategoryMath,
		Inputs: []spec.PortDef{
			{Name: "a", Type: spec.TypeVec3},
			{Name: "b", Type: spec.TypeVec3},
			{Name: "t", Type: spec.TypeFloat},
		},
		Outputs: []spec.PortDef{{Name: "result", Type: spec.TypeVec3}},
		Main:    spec.MustParse("$out.result = mix($in.a, $in.b, clamp($in.t, 0.0, 1.0));"),
	})

	// quantize snaps its input to the nearest lower level from a constant
	// table, the catalog's exercise of array parameters: levels become a
	// node-local constant array, never a uniform.
	r.Register(&spec.NodeSpec{
		Type:     "quantize",
		Category: spec.CategoryMath,
		Inputs:   []spec.PortDef{{Name: "value", Type: spec.TypeFloat}},
		Outputs:  []spec.PortDef{{Name: "result", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{{
			Name: "levels",
			Type: spec.TypeArray,
			Default: cty.ListVal([]cty.Value{
				num(0.25), num(0.5), num(0.75), num(1),
			}),
		}},
		Main: spec.MustParse(`float q = 0.0;
for (int i = 0; i < $param.levels.length(); ++i) {
    if ($in.value >= $param.levels[i]) { q = $param.levels[i]; }
}
$out.result = q;`),
	})
}

func ptr(f float64) *float64 { return &f }
