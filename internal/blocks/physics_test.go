package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testWorldForPhysics() *World {
	return &World{
		Objects: map[string]ObjectDef{
			"smallBall":    {Form: FormBall, Size: SizeSmall},
			"largeBall":    {Form: FormBall, Size: SizeLarge},
			"smallBox":     {Form: FormBox, Size: SizeSmall},
			"largeBox":     {Form: FormBox, Size: SizeLarge},
			"smallPyramid": {Form: FormPyramid, Size: SizeSmall},
			"largePyramid": {Form: FormPyramid, Size: SizeLarge},
			"smallBrick":   {Form: FormBrick, Size: SizeSmall},
			"largeBrick":   {Form: FormBrick, Size: SizeLarge},
			"smallPlank":   {Form: FormPlank, Size: SizeSmall},
			"largeTable":   {Form: FormTable, Size: SizeLarge},
		},
	}
}

func TestPermits_Inside(t *testing.T) {
	w := testWorldForPhysics()

	testCases := []struct {
		name  string
		upper string
		lower string
		want  bool
	}{
		{name: "small ball inside small box", upper: "smallBall", lower: "smallBox", want: true},
		{name: "large ball cannot go inside small box", upper: "largeBall", lower: "smallBox", want: false},
		{name: "box cannot go inside non-box", upper: "smallBall", lower: "smallBrick", want: false},
		{name: "same-size box cannot nest in box", upper: "smallBox", lower: "smallBox", want: false},
		{name: "small pyramid cannot go inside same-size box", upper: "smallPyramid", lower: "smallBox", want: false},
		{name: "small brick can go inside large box", upper: "smallBrick", lower: "largeBox", want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got := Permits(w, tc.upper, tc.lower, RelInside)
			assert.Equal(tc.want, got)
		})
	}
}

func TestPermits_OnTop(t *testing.T) {
	w := testWorldForPhysics()

	testCases := []struct {
		name  string
		upper string
		lower string
		want  bool
	}{
		{name: "brick ontop of brick", upper: "smallBrick", lower: "largeBrick", want: true},
		{name: "nothing can go ontop of a box", upper: "smallBall", lower: "smallBox", want: false},
		{name: "nothing can go ontop of a ball", upper: "smallBrick", lower: "smallBall", want: false},
		{name: "ball cannot balance ontop of a brick", upper: "smallBall", lower: "largeBrick", want: false},
		{name: "large cannot sit ontop of small", upper: "largeBrick", lower: "smallBrick", want: false},
		{name: "small box cannot sit ontop of small pyramid", upper: "smallBox", lower: "smallPyramid", want: false},
		{name: "large box cannot sit ontop of large pyramid", upper: "largeBox", lower: "largePyramid", want: false},
		{name: "small box can sit ontop of large pyramid", upper: "smallBox", lower: "largePyramid", want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got := Permits(w, tc.upper, tc.lower, RelOnTop)
			assert.Equal(tc.want, got)
		})
	}
}

func TestPermits_Above(t *testing.T) {
	w := testWorldForPhysics()

	testCases := []struct {
		name  string
		upper string
		lower string
		want  bool
	}{
		{name: "anything above floor", upper: "smallBall", lower: Floor, want: true},
		{name: "nothing above a ball", upper: "smallBrick", lower: "smallBall", want: false},
		{name: "large cannot be above small", upper: "largeBrick", lower: "smallBrick", want: false},
		{name: "small above large is fine", upper: "smallBrick", lower: "largeBrick", want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got := Permits(w, tc.upper, tc.lower, RelAbove)
			assert.Equal(tc.want, got)
		})
	}
}

func TestPermits_Under(t *testing.T) {
	w := testWorldForPhysics()
	assert := assert.New(t)

	assert.True(Permits(w, "smallBrick", "largeBrick", RelUnder))
	assert.False(Permits(w, "smallBall", "largeBrick", RelUnder))
}

func TestPermits_PositionalRelationsAlwaysStructurallyOK(t *testing.T) {
	w := testWorldForPhysics()
	assert := assert.New(t)

	assert.True(Permits(w, "smallBall", "largeBox", RelLeftOf))
	assert.True(Permits(w, "smallBall", "largeBox", RelRightOf))
	assert.True(Permits(w, "smallBall", "largeBox", RelBeside))
}

func TestPermits_RejectsSelfRelation(t *testing.T) {
	w := testWorldForPhysics()
	assert := assert.New(t)

	assert.False(Permits(w, "smallBall", "smallBall", RelOnTop))
}

func TestPermits_FloorAsLower(t *testing.T) {
	w := testWorldForPhysics()
	assert := assert.New(t)

	// floor has FormFloor, which is not FormBox or FormBall, so ontop of the
	// floor is always permitted for non-ball uppers.
	assert.True(Permits(w, "smallBrick", Floor, RelOnTop))
	assert.True(Permits(w, "smallBall", Floor, RelOnTop))
}
