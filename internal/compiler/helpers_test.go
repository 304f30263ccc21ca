package compiler

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// testRegistry builds a small purpose-built catalog covering every behavior
// the compile stages branch on: a scalar source, a vector source, arithmetic
// with inputs, a parameter with a default combination mode, a subroutine
// helper, a live external source, and a sink.
func testRegistry() *registry.Registry {
	r := registry.New()

	r.Register(&spec.NodeSpec{
		Type:          "scalar",
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
		Type:          "triple",
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
		Type:     "sum",
		Category: spec.CategoryMath,
		Inputs: []spec.PortDef{
			{Name: "a", Type: spec.TypeFloat},
			{Name: "b", Type: spec.TypeFloat},
		},
		Outputs: []spec.PortDef{{Name: "result", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{{
			Name:    "gain",
			Type:    spec.TypeFloat,
			Default: cty.NumberFloatVal(1),
			Mode:    spec.ModeMultiply,
		}},
		Main: spec.MustParse("$out.result = ($in.a + $in.b) * $param.gain;"),
	})

	r.Register(&spec.NodeSpec{
		Type:     "widen",
		Category: spec.CategoryColor,
		Inputs:   []spec.PortDef{{Name: "value", Type: spec.TypeVec3}},
		Outputs:  []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Main:     spec.MustParse("$out.color = $in.value;"),
	})

	r.Register(&spec.NodeSpec{
		Type:       "helper",
		Category:   spec.CategoryColor,
		Inputs:     []spec.PortDef{{Name: "value", Type: spec.TypeFloat}},
		Outputs:    []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Subroutine: spec.MustParse("vec3 ramp(float x) {\n    return vec3(x, x * 0.5, 0.0);\n}"),
		Main:       spec.MustParse("$out.color = ramp($in.value);"),
	})

	r.Register(&spec.NodeSpec{
		Type:          "meter",
		Category:      spec.CategoryAudio,
		SelfSupplying: true,
		LiveSource:    true,
		Outputs:       []spec.PortDef{{Name: "level", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{
			{Name: "level", Type: spec.TypeFloat, Default: cty.NumberFloatVal(0)},
			// peak is bound by the runtime but not read by the template.
			{Name: "peak", Type: spec.TypeFloat, Default: cty.NumberFloatVal(0)},
		},
		Main: spec.MustParse("$out.level = $param.level;"),
	})

	r.Register(&spec.NodeSpec{
		Type:     "view",
		Category: spec.CategoryOutput,
		Sink:     true,
		Inputs:   []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Outputs:  []spec.PortDef{{Name: "color", Type: spec.TypeVec3}},
		Params: []spec.ParamDef{{
			Name:    "exposure",
			Type:    spec.TypeFloat,
			Default: cty.NumberFloatVal(1),
			Mode:    spec.ModeMultiply,
		}},
		Main: spec.MustParse("$out.color = $in.color * $param.exposure;"),
	})

	return r
}

// testDoc wraps nodes and connections in a structurally valid document.
func testDoc(nodes []*graph.Node, conns []*graph.Connection) *graph.Document {
	return &graph.Document{
		ID:          "doc-1",
		Name:        "test graph",
		Version:     graph.SchemaVersion,
		Nodes:       nodes,
		Connections: conns,
	}
}

func node(id, typeID string) *graph.Node {
	return &graph.Node{ID: id, Type: typeID}
}

func portConn(id, srcNode, srcPort, dstNode, dstPort string) *graph.Connection {
	return &graph.Connection{
		ID:         id,
		SourceNode: srcNode,
		SourcePort: srcPort,
		TargetNode: dstNode,
		TargetPort: dstPort,
	}
}

func paramConn(id, srcNode, srcPort, dstNode, dstParam string) *graph.Connection {
	return &graph.Connection{
		ID:          id,
		SourceNode:  srcNode,
		SourcePort:  srcPort,
		TargetNode:  dstNode,
		TargetParam: dstParam,
	}
}
