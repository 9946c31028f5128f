package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// literalTestWorld builds:
//
//	col0 (bottom->top): a, b
//	col1: c
//	col2: (empty)
//
// with d held by the arm.
func literalTestWorld() *World {
	return &World{
		Stacks:  [][]string{{"a", "b"}, {"c"}, {}},
		Arm:     1,
		Holding: "d",
		Objects: map[string]ObjectDef{
			"a": {Form: FormBrick, Size: SizeLarge},
			"b": {Form: FormBrick, Size: SizeSmall},
			"c": {Form: FormBox, Size: SizeLarge},
			"d": {Form: FormBall, Size: SizeSmall},
		},
	}
}

func TestIsLiteralTrue(t *testing.T) {
	w := literalTestWorld()

	testCases := []struct {
		name string
		lit  Literal
		want bool
	}{
		{name: "holding matches held label", lit: Holding("d"), want: true},
		{name: "holding rejects stacked label", lit: Holding("a"), want: false},
		{name: "ontop direct support", lit: Rel(RelOnTop, "b", "a"), want: true},
		{name: "ontop is not transitive", lit: Rel(RelOnTop, "b", Floor), want: false},
		{name: "ontop of floor at height zero", lit: Rel(RelOnTop, "a", Floor), want: true},
		{name: "leftof means a lower column", lit: Rel(RelLeftOf, "a", "c"), want: true},
		{name: "leftof rejects the reverse order", lit: Rel(RelLeftOf, "c", "a"), want: false},
		{name: "rightof means a higher column", lit: Rel(RelRightOf, "c", "a"), want: true},
		{name: "rightof rejects the reverse order", lit: Rel(RelRightOf, "a", "c"), want: false},
		{name: "held labels have no column for leftof", lit: Rel(RelLeftOf, "d", "c"), want: false},
		{name: "beside means adjacent columns", lit: Rel(RelBeside, "a", "c"), want: true},
		{name: "beside rejects same column", lit: Rel(RelBeside, "a", "b"), want: false},
		{name: "above spans the whole column", lit: Rel(RelAbove, "b", "a"), want: true},
		{name: "above rejects different columns", lit: Rel(RelAbove, "c", "a"), want: false},
		{name: "under is the inverse of above", lit: Rel(RelUnder, "a", "b"), want: true},
		{name: "inside checks direct support", lit: Rel(RelInside, "b", "a"), want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsLiteralTrue(tc.lit, w))
		})
	}
}

func TestIsLiteralTrue_ResultIndependentOfStackSliceSharing(t *testing.T) {
	assert := assert.New(t)

	w := literalTestWorld()
	clone := w.Clone()

	lit := Rel(RelLeftOf, "a", "c")
	assert.Equal(IsLiteralTrue(lit, w), IsLiteralTrue(lit, clone))
}
