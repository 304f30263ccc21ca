// Package transform provides the coordinate-warping nodes of the builtin
// catalog. Transform outputs are pre-initialized to the unmodified base
// coordinate, so a downstream node reading an upstream transform that was
// skipped still samples sensible coordinates.
package transform

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the transform node specs with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&spec.NodeSpec{
		Type:     "rotate",
		Category: spec.CategoryTransform,
		Inputs:   []spec.PortDef{{Name: "coord", Type: spec.TypeVec2}},
		Outputs:  []spec.PortDef{{Name: "coord", Type: spec.TypeVec2}},
		Params: []spec.ParamDef{{
			Name:    "angle",
			Type:    spec.TypeFloat,
			Default: cty.NumberFloatVal(0),
			Mode:    spec.ModeAdd,
		}},
		Main: spec.MustParse(`vec2 c = $in.coord - vec2(0.5);
float a = $param.angle;
$out.coord = vec2(c.x * cos(a) - c.y * sin(a), c.x * sin(a) + c.y * cos(a)) + vec2(0.5);`),
	})

	r.Register(&spec.NodeSpec{
		Type:     "scale",
		Category: spec.CategoryTransform,
		Inputs:   []spec.PortDef{{Name: "coord", Type: spec.TypeVec2}},
		Outputs:  []spec.PortDef{{Name: "coord", Type: spec.TypeVec2}},
		Params: []spec.ParamDef{{
			Name: "factor",
			Type: spec.TypeVec2,
			Default: cty.TupleVal([]cty.Value{
				cty.NumberFloatVal(1), cty.NumberFloatVal(1),
			}),
		}},
		Main: spec.MustParse("$out.coord = ($in.coord - vec2(0.5)) / $param.factor + vec2(0.5);"),
	})

	r.Register(&spec.NodeSpec{
		Type:     "tile",
		Category: spec.CategoryTransform,
		Inputs:   []spec.PortDef{{Name: "coord", Type: spec.TypeVec2}},
		Outputs:  []spec.PortDef{{Name: "coord", Type: spec.TypeVec2}},
		Params: []spec.ParamDef{{
			Name:    "count",
			Type:    spec.TypeFloat,
			Default: cty.NumberFloatVal(4),
			Min:     ptr(1),
			Max:     ptr(64),
			Mode:    spec.ModeMultiply,
		}},
		Main: spec.MustParse("$out.coord = fract($in.coord * $param.count);"),
	})
}

func ptr(f float64) *float64 { return &f }
