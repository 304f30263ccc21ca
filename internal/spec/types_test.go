package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromotion_IsOneDirectionalAndTransitive(t *testing.T) {
	t.Parallel()

	assert.True(t, TypeFloat.PromotesTo(TypeVec2))
	assert.True(t, TypeFloat.PromotesTo(TypeVec4))
	assert.True(t, TypeVec2.PromotesTo(TypeVec3))
	assert.True(t, TypeVec3.PromotesTo(TypeVec4))

	assert.False(t, TypeVec4.PromotesTo(TypeFloat))
	assert.False(t, TypeVec3.PromotesTo(TypeVec2))
	assert.False(t, TypeVec2.PromotesTo(TypeVec2))
}

func TestPromotion_ExcludesNonLatticeTypes(t *testing.T) {
	t.Parallel()

	assert.False(t, TypeInt.PromotesTo(TypeFloat))
	assert.False(t, TypeFloat.PromotesTo(TypeInt))
	assert.False(t, TypeBool.PromotesTo(TypeVec2))
	assert.False(t, TypeArray.PromotesTo(TypeVec4))
}

func TestAssignableTo(t *testing.T) {
	t.Parallel()

	assert.True(t, TypeVec2.AssignableTo(TypeVec2))
	assert.True(t, TypeFloat.AssignableTo(TypeVec4))
	assert.False(t, TypeVec4.AssignableTo(TypeFloat))
	assert.True(t, TypeInt.AssignableTo(TypeInt))
	assert.False(t, TypeInt.AssignableTo(TypeFloat))
}

func TestConnectable(t *testing.T) {
	t.Parallel()

	for _, vt := range []ValueType{TypeFloat, TypeInt, TypeBool, TypeVec2, TypeVec3, TypeVec4} {
		assert.True(t, vt.Connectable(), "%s should be connectable", vt)
	}
	assert.False(t, TypeArray.Connectable())
	assert.False(t, TypeString.Connectable())
}

func TestZeroLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.0", TypeFloat.ZeroLiteral())
	assert.Equal(t, "0", TypeInt.ZeroLiteral())
	assert.Equal(t, "false", TypeBool.ZeroLiteral())
	assert.Equal(t, "vec3(0.0)", TypeVec3.ZeroLiteral())
}
