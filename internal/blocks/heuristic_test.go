package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func heuristicTestWorld() *World {
	return &World{
		Stacks: [][]string{{"a", "b"}, {}, {"c"}},
		Arm:    0,
		Objects: map[string]ObjectDef{
			"a": {Form: FormBrick, Size: SizeLarge},
			"b": {Form: FormBrick, Size: SizeSmall},
			"c": {Form: FormBrick, Size: SizeSmall},
		},
	}
}

func TestHeuristic_ZeroWhenAlreadyTrue(t *testing.T) {
	w := heuristicTestWorld()
	assert := assert.New(t)

	lit := Rel(RelOnTop, "b", "a")
	assert.True(IsLiteralTrue(lit, w))
	assert.Equal(0, Heuristic(lit, w))
}

func TestHeuristic_HoldingAccountsForExposureAndTravel(t *testing.T) {
	w := heuristicTestWorld()
	assert := assert.New(t)

	// b is on top of a (nothing to expose) in column 0, arm already there.
	assert.Equal(1, Heuristic(Holding("b"), w))

	// c sits alone in column 2: nothing above it, but the arm must travel.
	assert.Equal(3, Heuristic(Holding("c"), w))
}

func TestHeuristic_NeverOverestimatesASingleStep(t *testing.T) {
	w := heuristicTestWorld()
	assert := assert.New(t)

	lit := Holding("c")
	h := Heuristic(lit, w)

	edges := Successors(w)
	assert.NotEmpty(edges)
	for _, e := range edges {
		hNext := Heuristic(lit, e.Next)
		assert.LessOrEqual(hNext, h, "heuristic must not increase by more than the true step cost of 1")
		assert.GreaterOrEqual(hNext, h-1)
	}
}

func TestHeuristicGoal_PicksCheapestDisjunct(t *testing.T) {
	w := heuristicTestWorld()
	assert := assert.New(t)

	goal := Goal{
		Conjunction{Holding("c")}, // arm must travel
		Conjunction{Holding("b")}, // arm already in column
	}
	assert.Equal(Heuristic(Holding("b"), w), HeuristicGoal(goal, w))
}

func TestHeuristicConjunction_TakesMaxOverLiterals(t *testing.T) {
	w := heuristicTestWorld()
	assert := assert.New(t)

	conj := Conjunction{Holding("b"), Holding("c")}
	want := max(Heuristic(Holding("b"), w), Heuristic(Holding("c"), w))
	assert.Equal(want, HeuristicConjunction(conj, w))
}
