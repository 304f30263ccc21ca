// Package audio provides the audio-reactive source nodes of the builtin
// catalog.
//
// These nodes are live external data sources: their uniforms carry values
// an audio-analysis collaborator computes and rebinds every frame. The
// compiler therefore never eliminates them from the binding table, even
// when the current graph does not reference them in an expression.
package audio

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the audio node specs with the catalog.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&spec.NodeSpec{
		Type:          "audio_level",
		Category:      spec.CategoryAudio,
		SelfSupplying: true,
		LiveSource:    true,
		Outputs:       []spec.PortDef{{Name: "level", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{{
			Name:    "level",
			Type:    spec.TypeFloat,
			Default: cty.NumberFloatVal(0),
			Min:     ptr(0),
			Max:     ptr(1),
		}},
		Main: spec.MustParse("$out.level = $param.level;"),
	})

	r.Register(&spec.NodeSpec{
		Type:          "audio_bands",
		Category:      spec.CategoryAudio,
		SelfSupplying: true,
		LiveSource:    true,
		Outputs: []spec.PortDef{
			{Name: "bass", Type: spec.TypeFloat},
			{Name: "mid", Type: spec.TypeFloat},
			{Name: "treble", Type: spec.TypeFloat},
		},
		Params: []spec.ParamDef{
			{Name: "bass", Type: spec.TypeFloat, Default: cty.NumberFloatVal(0), Min: ptr(0), Max: ptr(1)},
			{Name: "mid", Type: spec.TypeFloat, Default: cty.NumberFloatVal(0), Min: ptr(0), Max: ptr(1)},
			{Name: "treble", Type: spec.TypeFloat, Default: cty.NumberFloatVal(0), Min: ptr(0), Max: ptr(1)},
		},
		Main: spec.MustParse(`$out.bass = $param.bass;
$out.mid = $param.mid;
$out.treble = $param.treble;`),
	})
}

func ptr(f float64) *float64 { return &f }
