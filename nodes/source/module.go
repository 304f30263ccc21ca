// Package source provides the generator nodes of the builtin catalog:
// nodes that manufacture a value without reading any ports.
package source

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the source node specs with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&spec.NodeSpec{
		Type:          "constant",
		Category:      spec.CategorySource,
		SelfSupplying: true,
		Outputs:       []spec.PortDef{{Name: "value", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{{
			Name:    "value",
			Type:    spec.TypeFloat,
			Default: cty.NumberFloatVal(0),
		}},
		Main: spec.MustParse("$out.value = $param.value;"),
	})

	r.Register(&spec.NodeSpec{
		Type:          "color_constant",
		Category:      spec.CategorySource,
		SelfSupplying: true,
		Outputs:       []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Params: []spec.ParamDef{{
			Name: "rgb",
			Type: spec.TypeVec3,
			Default: cty.TupleVal([]cty.Value{
				cty.NumberFloatVal(1), cty.NumberFloatVal(1), cty.NumberFloatVal(1),
			}),
		}},
		Main: spec.MustParse("$out.color = $param.rgb;"),
	})

	r.Register(&spec.NodeSpec{
		Type:          "coordinates",
		Category:      spec.CategorySource,
		SelfSupplying: true,
		Outputs:       []spec.PortDef{{Name: "coord", Type: spec.TypeVec2}},
		Main:          spec.MustParse("$out.coord = $coord;"),
	})

	r.Register(&spec.NodeSpec{
		Type:          "clock",
		Category:      spec.CategorySource,
		SelfSupplying: true,
		Outputs:       []spec.PortDef{{Name: "value", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{{
			Name:    "speed",
			Type:    spec.TypeFloat,
			Default: cty.NumberFloatVal(1),
			Mode:    spec.ModeMultiply,
		}},
		Main: spec.MustParse("$out.value = $time * $param.speed;"),
	})
}
