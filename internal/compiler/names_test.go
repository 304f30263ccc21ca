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

func TestSanitizeIdent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"osc1", "osc1"},
		{"osc-1", "osc_1"},
		{"node.a b", "node_a_b"},
		{"2fast", "n2fast"},
		{"Uv", "Uv"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeIdent(tc.in), "input %q", tc.in)
	}
}

func TestNameShapes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "out_osc1_wave", outputVarName("osc1", "wave"))
	assert.Equal(t, "u_osc1_Frequency", uniformName("osc1", "frequency"))
	assert.Equal(t, "arr_q_levels", localArrayName("q", "levels"))
}

// Parameters whose names differ only in punctuation stay distinct through
// capitalization.
func TestUniformName_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uniformName("a-b", "c"), uniformName("a-b", "c"))
	assert.NotEqual(t, uniformName("a", "value"), uniformName("a", "Value2"))
}

func namesTestRegistry() *registry.Registry {
	r := testRegistry()
	r.Register(&spec.NodeSpec{
		Type:     "stepper",
		Category: spec.CategoryMath,
		Inputs:   []spec.PortDef{{Name: "value", Type: spec.TypeFloat}},
		Outputs:  []spec.PortDef{{Name: "result", Type: spec.TypeFloat}},
		Params: []spec.ParamDef{
			{Name: "levels", Type: spec.TypeArray, Default: cty.ListValEmpty(cty.Number)},
			{Name: "mode", Type: spec.TypeString, Default: cty.StringVal("floor")},
			{Name: "bias", Type: spec.TypeFloat, Default: cty.NumberFloatVal(0)},
		},
		Main: spec.MustParse("$out.result = $in.value + $param.bias + $param.levels[0];"),
	})
	return r
}

func TestAllocateNames_OutputsAndUniforms(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc([]*graph.Node{node("s", "sum")}, nil)

	// Act
	nt := allocateNames(doc, namesTestRegistry(), nil)

	// Assert
	assert.Equal(t, "out_s_result", nt.output("s", "result"))
	u := nt.uniform("s", "gain")
	require.NotNil(t, u)
	assert.Equal(t, "u_s_Gain", u.name)
	assert.False(t, u.used)
}

// Array and string parameters never get uniforms; numeric siblings on the
// same node still do.
func TestAllocateNames_ParameterOnlyTypesSuppressed(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc([]*graph.Node{node("q", "stepper")}, nil)

	// Act
	nt := allocateNames(doc, namesTestRegistry(), nil)

	// Assert
	assert.Nil(t, nt.uniform("q", "levels"))
	assert.Nil(t, nt.uniform("q", "mode"))
	require.NotNil(t, nt.uniform("q", "bias"))
}

// An override-mode feed replaces the base value entirely, so the uniform is
// never allocated. Arithmetic modes keep it.
func TestAllocateNames_OverrideFeedSuppresses(t *testing.T) {
	t.Parallel()

	// Arrange
	override := node("ovr", "stepper")
	combined := node("cmb", "sum") // gain defaults to multiply mode
	doc := testDoc(
		[]*graph.Node{node("src", "scalar"), override, combined},
		[]*graph.Connection{
			paramConn("c1", "src", "value", "ovr", "bias"),
			paramConn("c2", "src", "value", "cmb", "gain"),
		},
	)
	_, paramFeeds := buildFeeds(doc)

	// Act
	nt := allocateNames(doc, namesTestRegistry(), paramFeeds)

	// Assert
	assert.Nil(t, nt.uniform("ovr", "bias"))
	assert.NotNil(t, nt.uniform("cmb", "gain"))
}

func TestAllocateNames_LiveSourceMarked(t *testing.T) {
	t.Parallel()

	// Arrange
	doc := testDoc([]*graph.Node{node("m", "meter"), node("s", "scalar")}, nil)

	// Act
	nt := allocateNames(doc, namesTestRegistry(), nil)

	// Assert
	require.NotNil(t, nt.uniform("m", "level"))
	assert.True(t, nt.uniform("m", "level").live)
	assert.False(t, nt.uniform("s", "value").live)
}
