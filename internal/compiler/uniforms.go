package compiler

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/shadegrid/internal/spec"
)

// Default resolution reported in the binding table before the runtime binds
// the real viewport size.
var defaultResolution = []float64{1920, 1080}

// uniformTable builds the final uniform binding table. A node uniform is
// retained only when its identifier was actually substituted into the
// generated code; usage was recorded during codegen, so no text scan is
// needed. Two categories are always retained: the fixed globals, which the
// runtime binds unconditionally, and uniforms of live external data-source
// nodes, which are refreshed every frame by a collaborator and must never
// be elided even when the current graph ignores them.
func (g *genContext) uniformTable() []UniformMeta {
	table := []UniformMeta{
		{Name: timeUniform, Kind: "float", Default: []float64{0}},
		{Name: resolutionUniform, Kind: "vec2", Default: defaultResolution},
	}

	var kept []*uniformEntry
	for _, u := range g.names.uniforms {
		if u.used || u.live {
			kept = append(kept, u)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].name < kept[j].name })

	for _, u := range kept {
		n := g.doc.NodeByID(u.node)
		table = append(table, UniformMeta{
			Name:    u.name,
			Node:    u.node,
			Param:   u.param.Name,
			Kind:    u.param.Type.GLSL(),
			Default: defaultComponents(paramValue(n, u.param), u.param.Type),
			Live:    u.live,
		})
	}
	return table
}

// defaultComponents flattens a parameter value into binding-table floats,
// one per component.
func defaultComponents(v cty.Value, t spec.ValueType) []float64 {
	zero := make([]float64, t.Components())
	if v == cty.NilVal {
		return zero
	}
	converted, err := convert.Convert(v, t.CtyType())
	if err != nil {
		return zero
	}

	switch t {
	case spec.TypeFloat, spec.TypeInt:
		return []float64{ctyFloat(converted)}
	case spec.TypeBool:
		if converted.True() {
			return []float64{1}
		}
		return []float64{0}
	case spec.TypeVec2, spec.TypeVec3, spec.TypeVec4:
		out := make([]float64, 0, t.Components())
		for it := converted.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, ctyFloat(ev))
		}
		return out
	}
	return zero
}
