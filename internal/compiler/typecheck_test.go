package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// typecheckRegistry extends the shared catalog with types exercising every
// lattice edge.
func typecheckRegistry() *registry.Registry {
	r := testRegistry()

	r.Register(&spec.NodeSpec{
		Type:          "pair",
		Category:      spec.CategorySource,
		SelfSupplying: true,
		Outputs:       []spec.PortDef{{Name: "coord", Type: spec.TypeVec2}},
		Main:          spec.MustParse("$out.coord = $coord;"),
	})
	r.Register(&spec.NodeSpec{
		Type:          "counter",
		Category:      spec.CategorySource,
		SelfSupplying: true,
		Outputs:       []spec.PortDef{{Name: "n", Type: spec.TypeInt}},
		Params:        []spec.ParamDef{{Name: "n", Type: spec.TypeInt, Default: cty.NumberIntVal(0)}},
		Main:          spec.MustParse("$out.n = $param.n;"),
	})
	r.Register(&spec.NodeSpec{
		Type:          "flag",
		Category:      spec.CategorySource,
		SelfSupplying: true,
		Outputs:       []spec.PortDef{{Name: "on", Type: spec.TypeBool}},
		Params:        []spec.ParamDef{{Name: "on", Type: spec.TypeBool, Default: cty.False}},
		Main:          spec.MustParse("$out.on = $param.on;"),
	})
	r.Register(&spec.NodeSpec{
		Type:     "gate",
		Category: spec.CategoryMath,
		Inputs:   []spec.PortDef{{Name: "value", Type: spec.TypeFloat}},
		Outputs:  []spec.PortDef{{Name: "result", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{
			{Name: "open", Type: spec.TypeBool, Default: cty.True},
			{Name: "curve", Type: spec.TypeArray, Default: cty.ListValEmpty(cty.Number)},
		},
		Main: spec.MustParse("$out.result = $param.open ? $in.value : $param.curve[0];"),
	})
	return r
}

func TestCheckTypes_WideningAccepted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		srcType string
		srcPort string
	}{
		{"float to vec3 input", "scalar", "value"},
		{"vec2 to vec3 input", "pair", "coord"},
		{"vec3 to vec3 input", "triple", "color"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Arrange
			doc := testDoc(
				[]*graph.Node{node("src", tc.srcType), node("dst", "widen")},
				[]*graph.Connection{portConn("c1", "src", tc.srcPort, "dst", "value")},
			)
			diags := &diagSink{}

			// Act
			checkTypes(doc, typecheckRegistry(), diags)

			// Assert
			assert.Empty(t, diags.errors)
		})
	}
}

func TestCheckTypes_NarrowingRejected(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc(
		[]*graph.Node{node("src", "triple"), node("dst", "gate")},
		[]*graph.Connection{portConn("c1", "src", "color", "dst", "value")},
	)
	diags := &diagSink{}

	// Act
	checkTypes(doc, typecheckRegistry(), diags)

	// Assert
	require.Len(t, diags.errors, 1)
	assert.Contains(t, diags.errors[0], `cannot connect vec3 output "src".color to float input "dst".value`)
}

// int does not participate in the widening lattice; int feeds only int.
func TestCheckTypes_IntIsNotPromotable(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc(
		[]*graph.Node{node("src", "counter"), node("dst", "gate")},
		[]*graph.Connection{portConn("c1", "src", "n", "dst", "value")},
	)
	diags := &diagSink{}

	// Act
	checkTypes(doc, typecheckRegistry(), diags)

	// Assert
	require.Len(t, diags.errors, 1)
	assert.Contains(t, diags.errors[0], "cannot connect int output")
}

func TestCheckTypes_UnknownSourcePort(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc(
		[]*graph.Node{node("src", "scalar"), node("dst", "widen")},
		[]*graph.Connection{portConn("c1", "src", "values", "dst", "value")},
	)
	diags := &diagSink{}

	// Act
	checkTypes(doc, typecheckRegistry(), diags)

	// Assert
	require.Len(t, diags.errors, 1)
	assert.Contains(t, diags.errors[0], `invalid port: node "src" (scalar) has no output "values"`)
}

func TestCheckTypes_UnknownTargetPort(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc(
		[]*graph.Node{node("src", "scalar"), node("dst", "widen")},
		[]*graph.Connection{portConn("c1", "src", "value", "dst", "input")},
	)
	diags := &diagSink{}

	// Act
	checkTypes(doc, typecheckRegistry(), diags)

	// Assert
	require.Len(t, diags.errors, 1)
	assert.Contains(t, diags.errors[0], `invalid port: node "dst" (widen) has no input "input"`)
}

func TestCheckTypes_UnknownTargetParam(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc(
		[]*graph.Node{node("src", "scalar"), node("dst", "sum")},
		[]*graph.Connection{paramConn("c1", "src", "value", "dst", "boost")},
	)
	diags := &diagSink{}

	// Act
	checkTypes(doc, typecheckRegistry(), diags)

	// Assert
	require.Len(t, diags.errors, 1)
	assert.Contains(t, diags.errors[0], `invalid port: node "dst" (sum) has no parameter "boost"`)
}

// Array parameters are compile-time constants; a connection cannot feed
// them.
func TestCheckTypes_ArrayParamNotConnectable(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc(
		[]*graph.Node{node("src", "scalar"), node("dst", "gate")},
		[]*graph.Connection{paramConn("c1", "src", "value", "dst", "curve")},
	)
	diags := &diagSink{}

	// Act
	checkTypes(doc, typecheckRegistry(), diags)

	// Assert
	require.Len(t, diags.errors, 1)
	assert.Contains(t, diags.errors[0], "cannot be fed by a connection")
}

// Arithmetic combination has no meaning for a bool base value.
func TestCheckTypes_BoolParamRequiresOverrideMode(t *testing.T) {
	t.Parallel()

	// Arrange
	dst := node("dst", "gate")
	dst.Modes = map[string]spec.InputMode{"open": spec.ModeAdd}
	doc := testDoc(
		[]*graph.Node{node("src", "flag"), dst},
		[]*graph.Connection{paramConn("c1", "src", "on", "dst", "open")},
	)
	diags := &diagSink{}

	// Act
	checkTypes(doc, typecheckRegistry(), diags)

	// Assert
	require.Len(t, diags.errors, 1)
	assert.Contains(t, diags.errors[0], "only supports the override input mode")
}

func TestCheckTypes_UnknownInstanceMode(t *testing.T) {
	t.Parallel()

	// Arrange
	dst := node("dst", "sum")
	dst.Modes = map[string]spec.InputMode{"gain": "modulate"}
	doc := testDoc(
		[]*graph.Node{node("src", "scalar"), dst},
		[]*graph.Connection{paramConn("c1", "src", "value", "dst", "gain")},
	)
	diags := &diagSink{}

	// Act
	checkTypes(doc, typecheckRegistry(), diags)

	// Assert
	require.Len(t, diags.errors, 1)
	assert.Contains(t, diags.errors[0], `unknown input mode "modulate"`)
}
