package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// resolveTestWorld builds:
//
//	col0 (bottom->top): redBrick, greenBall
//	col1: blueBox
//	col2: (empty)
//
// arm over col2, holding nothing.
func resolveTestWorld() *World {
	return &World{
		Stacks: [][]string{
			{"redBrick", "greenBall"},
			{"blueBox"},
			{},
		},
		Arm: 2,
		Objects: map[string]ObjectDef{
			"redBrick":  {Form: FormBrick, Color: "red", Size: SizeLarge},
			"greenBall": {Form: FormBall, Color: "green", Size: SizeSmall},
			"blueBox":   {Form: FormBox, Color: "blue", Size: SizeLarge},
		},
	}
}

func TestResolveObject_Leaf(t *testing.T) {
	w := resolveTestWorld()
	universe := append(w.AllLabels(), Floor)

	testCases := []struct {
		name      string
		obj       Object
		want      []string
		expectErr bool
	}{
		{name: "unique form match", obj: NewLeaf(SizeAny, ColorAny, FormBall), want: []string{"greenBall"}},
		{name: "unique color match", obj: NewLeaf(SizeAny, "red", FormAny), want: []string{"redBrick"}},
		{name: "size+form match", obj: NewLeaf(SizeLarge, ColorAny, FormAny), want: []string{"redBrick", "blueBox"}},
		{name: "floor matches the floor leaf", obj: NewLeaf(SizeAny, ColorAny, FormFloor), want: []string{Floor}},
		{name: "no matches is an error", obj: NewLeaf(SizeAny, "purple", FormAny), expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got, err := ResolveObject(w, tc.obj, universe)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.ElementsMatch(tc.want, got)
		})
	}
}

func TestResolveObject_Relative(t *testing.T) {
	w := resolveTestWorld()
	universe := append(w.AllLabels(), Floor)

	testCases := []struct {
		name      string
		obj       Object
		want      []string
		expectErr bool
	}{
		{
			name: "ball ontop of brick",
			obj: NewRelative(
				NewLeaf(SizeAny, ColorAny, FormBall),
				RelOnTop,
				Entity{Quantifier: QuantThe, Object: NewLeaf(SizeAny, ColorAny, FormBrick)},
			),
			want: []string{"greenBall"},
		},
		{
			name: "box rightof ball",
			obj: NewRelative(
				NewLeaf(SizeAny, ColorAny, FormBox),
				RelRightOf,
				Entity{Quantifier: QuantThe, Object: NewLeaf(SizeAny, ColorAny, FormBall)},
			),
			want: []string{"blueBox"},
		},
		{
			name: "brick ontop of floor",
			obj: NewRelative(
				NewLeaf(SizeAny, ColorAny, FormBrick),
				RelOnTop,
				Entity{Quantifier: QuantThe, Object: NewLeaf(SizeAny, ColorAny, FormFloor)},
			),
			want: []string{"redBrick"},
		},
		{
			name: "unsatisfiable relative clause is an error",
			obj: NewRelative(
				NewLeaf(SizeAny, ColorAny, FormBall),
				RelOnTop,
				Entity{Quantifier: QuantThe, Object: NewLeaf(SizeAny, ColorAny, FormBox)},
			),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got, err := ResolveObject(w, tc.obj, universe)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.ElementsMatch(tc.want, got)
		})
	}
}
