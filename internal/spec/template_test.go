package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate_SlotsAndLiterals(t *testing.T) {
	t.Parallel()

	tpl, err := ParseTemplate("$out.result = sin($in.value * $param.frequency + $time);")
	require.NoError(t, err)

	assert.Equal(t, []Slot{
		{Kind: SlotOutput, Name: "result"},
		{Kind: SlotInput, Name: "value"},
		{Kind: SlotParam, Name: "frequency"},
		{Kind: SlotTime},
	}, tpl.Slots())
}

func TestParseTemplate_RepeatedSlotListedOnce(t *testing.T) {
	t.Parallel()

	tpl, err := ParseTemplate("$out.v = $in.a + $in.a;")
	require.NoError(t, err)
	assert.Len(t, tpl.Slots(), 2)
}

func TestParseTemplate_Globals(t *testing.T) {
	t.Parallel()

	tpl, err := ParseTemplate("vec2 p = $coord * $resolution;")
	require.NoError(t, err)
	assert.Equal(t, []Slot{{Kind: SlotCoord}, {Kind: SlotResolution}}, tpl.Slots())
}

func TestParseTemplate_RejectsStrayDollar(t *testing.T) {
	t.Parallel()

	_, err := ParseTemplate("float x = $bogus.name;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a slot kind")
}

func TestParseTemplate_RejectsMissingName(t *testing.T) {
	t.Parallel()

	_, err := ParseTemplate("$param.")
	require.Error(t, err)

	_, err = ParseTemplate("$in")
	require.Error(t, err)
}

func TestRender_ResolvesEveryOccurrence(t *testing.T) {
	t.Parallel()

	tpl, err := ParseTemplate("$out.v = $in.a + $in.a;")
	require.NoError(t, err)

	got, err := tpl.Render(func(s Slot) (string, error) {
		switch s.Kind {
		case SlotOutput:
			return "out_n1_v", nil
		case SlotInput:
			return "0.5", nil
		}
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "out_n1_v = 0.5 + 0.5;", got)
}

func TestRender_IndexedArrayAccessKeepsLiteralIndex(t *testing.T) {
	t.Parallel()

	// An array parameter slot resolves to the local constant's identifier;
	// the surrounding [i] indexing is plain literal text.
	tpl, err := ParseTemplate("float s = $param.steps[2];")
	require.NoError(t, err)

	got, err := tpl.Render(func(s Slot) (string, error) {
		return "arr_n1_steps", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "float s = arr_n1_steps[2];", got)
}
