// Package output provides the terminal sink node of the builtin catalog.
package output

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the output node spec with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&spec.NodeSpec{
		Type:     "output",
		Category: spec.CategoryOutput,
		Sink:     true,
		Inputs:   []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Outputs:  []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Params: []spec.ParamDef{{
			Name:    "exposure",
			Type:    spec.TypeFloat,
			Default: cty.NumberFloatVal(1),
			Min:     ptr(0),
			Max:     ptr(4),
			Mode:    spec.ModeMultiply,
		}},
		Main: spec.MustParse("$out.color = $in.color * $param.exposure;"),
	})
}

func ptr(f float64) *float64 { return &f }
