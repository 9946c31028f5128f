package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func goalTestWorld() *World {
	return &World{
		Stacks: [][]string{{"a"}, {"b"}, {"c"}},
		Objects: map[string]ObjectDef{
			"a": {Form: FormBrick, Size: SizeSmall},
			"b": {Form: FormBrick, Size: SizeSmall},
			"c": {Form: FormBox, Size: SizeLarge},
		},
	}
}

func TestCompileGoal_Holding(t *testing.T) {
	w := goalTestWorld()

	testCases := []struct {
		name      string
		in        GoalInput
		wantLen   int
		expectErr bool
	}{
		{name: "the quantifier holding one", in: GoalInput{Relation: RelHolding, MovableQ: QuantThe, Movable: []string{"a"}}, wantLen: 1},
		{name: "all quantifier over one object", in: GoalInput{Relation: RelHolding, MovableQ: QuantAll, Movable: []string{"a"}}, wantLen: 1},
		{name: "all quantifier over multiple objects is infeasible", in: GoalInput{Relation: RelHolding, MovableQ: QuantAll, Movable: []string{"a", "b"}}, expectErr: true},
		{name: "any quantifier expands into a disjunction", in: GoalInput{Relation: RelHolding, MovableQ: QuantAny, Movable: []string{"a", "b"}}, wantLen: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g, err := CompileGoal(w, tc.in)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Len(g, tc.wantLen)
		})
	}
}

func TestCompileGoal_TheThe(t *testing.T) {
	w := goalTestWorld()
	assert := assert.New(t)

	relatableObj := NewLeaf(SizeLarge, ColorAny, FormBox)
	g, err := CompileGoal(w, GoalInput{
		Movable:      []string{"a"},
		MovableQ:     QuantThe,
		MovableObj:   NewLeaf(SizeSmall, ColorAny, FormBrick),
		Relatable:    []string{"c"},
		RelatableQ:   QuantThe,
		RelatableObj: &relatableObj,
		Relation:     RelInside,
	})
	assert.NoError(err)
	assert.Equal(Goal{Conjunction{Rel(RelInside, "a", "c")}}, g)
}

func TestCompileGoal_PhysicsRejection(t *testing.T) {
	w := goalTestWorld()
	assert := assert.New(t)

	// a brick cannot go inside another brick: RelatableObj is not a box, so
	// the static pre-filter rejects before any search is attempted.
	relatableObj := NewLeaf(SizeSmall, ColorAny, FormBrick)
	_, err := CompileGoal(w, GoalInput{
		Movable:      []string{"a"},
		MovableQ:     QuantThe,
		Relatable:    []string{"b"},
		RelatableQ:   QuantThe,
		RelatableObj: &relatableObj,
		Relation:     RelInside,
	})
	assert.Error(err)
}

func TestCompileGoal_OntoBallRejected(t *testing.T) {
	w := goalTestWorld()
	assert := assert.New(t)

	// balls can never support anything, regardless of what's moving: the
	// static pre-filter rejects before any search is attempted.
	relatableObj := NewLeaf(SizeAny, ColorAny, FormBall)
	_, err := CompileGoal(w, GoalInput{
		Movable:      []string{"a"},
		MovableQ:     QuantThe,
		MovableObj:   NewLeaf(SizeSmall, ColorAny, FormBrick),
		Relatable:    []string{"c"},
		RelatableQ:   QuantThe,
		RelatableObj: &relatableObj,
		Relation:     RelOnTop,
	})
	assert.EqualError(err, "Balls cannot support other objects.")
}

func TestCompileGoal_SelfReferenceRejected(t *testing.T) {
	w := goalTestWorld()
	assert := assert.New(t)

	movableObj := NewLeaf(SizeSmall, ColorAny, FormBrick)
	relatableObj := NewLeaf(SizeSmall, ColorAny, FormBrick)
	_, err := CompileGoal(w, GoalInput{
		Movable:      []string{"a", "b"},
		MovableQ:     QuantAll,
		MovableObj:   movableObj,
		Relatable:    []string{"a", "b"},
		RelatableQ:   QuantAll,
		RelatableObj: &relatableObj,
		Relation:     RelOnTop,
	})
	assert.Error(err)
}

func TestCompileGoal_AllOntoAnyExpandsPerMovable(t *testing.T) {
	w := goalTestWorld()
	assert := assert.New(t)

	g, err := CompileGoal(w, GoalInput{
		Movable:    []string{"a", "b"},
		MovableQ:   QuantAll,
		Relatable:  []string{"c"},
		RelatableQ: QuantAny,
		RelatableObj: func() *Object {
			o := NewLeaf(SizeLarge, ColorAny, FormBox)
			return &o
		}(),
		Relation: RelAbove,
	})
	assert.NoError(err)
	// both movables target the sole relatable, so there is exactly one
	// assignment and it must place both above c.
	assert.Len(g, 1)
	assert.Len(g[0], 2)
}

func TestIsGoalTrue(t *testing.T) {
	w := goalTestWorld()
	assert := assert.New(t)

	trueGoal := Goal{Conjunction{Holding("a")}}
	falseGoal := Goal{Conjunction{Holding("b")}}

	assert.False(IsGoalTrue(trueGoal, w))
	assert.False(IsGoalTrue(falseGoal, w))

	w.Holding = "a"
	assert.True(IsGoalTrue(trueGoal, w))
	assert.False(IsGoalTrue(falseGoal, w))
}
