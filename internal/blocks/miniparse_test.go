package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUtterance_BareVerb(t *testing.T) {
	assert := assert.New(t)
	cmds, err := ParseUtterance("drop")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(VerbPut, cmds[0].Verb)
	assert.Nil(cmds[0].Entity)
	assert.Nil(cmds[0].Location)
}

func TestParseUtterance_EntityOnly(t *testing.T) {
	assert := assert.New(t)
	cmds, err := ParseUtterance("take the large red ball")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	cmd := cmds[0]
	assert.Equal(VerbTake, cmd.Verb)
	require.NotNil(t, cmd.Entity)
	assert.Equal(QuantThe, cmd.Entity.Quantifier)
	leaf := cmd.Entity.Object.Leaf()
	assert.Equal(SizeLarge, leaf.Size)
	assert.Equal(Color("red"), leaf.Color)
	assert.Equal(FormBall, leaf.Form)
	assert.Nil(cmd.Location)
}

// TestParseUtterance_SinglePPIsTopLevelLocation guards the fix to
// parseEntity: a bare trailing PP with no "that is" marker must surface as
// the command's own Location, not get swallowed into the entity as an
// elliptical relative clause.
func TestParseUtterance_SinglePPIsTopLevelLocation(t *testing.T) {
	assert := assert.New(t)
	cmds, err := ParseUtterance("put the ball inside the yellow box")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	cmd := cmds[0]

	require.NotNil(t, cmd.Entity)
	assert.Equal(ObjectLeaf, cmd.Entity.Object.Kind)
	assert.Equal(FormBall, cmd.Entity.Object.Leaf().Form)

	require.NotNil(t, cmd.Location)
	assert.Equal(RelInside, cmd.Location.Relation)
	assert.Equal(QuantThe, cmd.Location.Entity.Quantifier)
	destLeaf := cmd.Location.Entity.Object.Leaf()
	assert.Equal(Color("yellow"), destLeaf.Color)
	assert.Equal(FormBox, destLeaf.Form)
}

func TestParseUtterance_ExplicitThatIsBindsRelativeClause(t *testing.T) {
	assert := assert.New(t)
	cmds, err := ParseUtterance("take the box that is on the floor")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	cmd := cmds[0]

	require.NotNil(t, cmd.Entity)
	assert.Equal(ObjectRelative, cmd.Entity.Object.Kind)
	assert.Equal(RelOnTop, cmd.Entity.Object.Relative.Relation)
	assert.Equal(FormFloor, cmd.Entity.Object.Relative.Entity.Object.Leaf().Form)
	assert.Nil(cmd.Location)
}

// TestParseUtterance_TwoTrailingPPsProduceAttachmentAmbiguity: with two
// trailing PPs, whether the first belongs to the command's location or to
// the entity's own relative clause is genuinely ambiguous, and both
// readings come back.
func TestParseUtterance_TwoTrailingPPsProduceAttachmentAmbiguity(t *testing.T) {
	assert := assert.New(t)
	cmds, err := ParseUtterance("put the white ball in a box on the floor")
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	readingA, readingB := cmds[0], cmds[1]

	// reading A: the destination box is the one on the floor.
	assert.Equal(ObjectLeaf, readingA.Entity.Object.Kind)
	require.NotNil(t, readingA.Location)
	assert.Equal(RelInside, readingA.Location.Relation)
	assert.Equal(ObjectRelative, readingA.Location.Entity.Object.Kind)
	assert.Equal(RelOnTop, readingA.Location.Entity.Object.Relative.Relation)

	// reading B: the ball being moved is the one on the floor.
	assert.Equal(ObjectRelative, readingB.Entity.Object.Kind)
	assert.Equal(RelOnTop, readingB.Entity.Object.Relative.Relation)
	require.NotNil(t, readingB.Location)
	assert.Equal(RelInside, readingB.Location.Relation)
	assert.Equal(ObjectLeaf, readingB.Location.Entity.Object.Kind)
}

func TestParseUtterance_MultiWordRelationPhrase(t *testing.T) {
	assert := assert.New(t)
	cmds, err := ParseUtterance("put the brick to the left of the table")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	require.NotNil(t, cmds[0].Location)
	assert.Equal(RelLeftOf, cmds[0].Location.Relation)
}

func TestParseUtterance_UnknownVerbFails(t *testing.T) {
	_, err := ParseUtterance("juggle the ball")
	assert.Error(t, err)
}

func TestParseUtterance_EmptyInputFails(t *testing.T) {
	_, err := ParseUtterance("   ")
	assert.Error(t, err)
}

func TestParseReferentReply(t *testing.T) {
	assert := assert.New(t)

	obj, ok := ParseReferentReply("the black one")
	require.True(t, ok)
	assert.Equal(Color("black"), obj.Leaf().Color)

	obj, ok = ParseReferentReply("a large box")
	require.True(t, ok)
	leaf := obj.Leaf()
	assert.Equal(SizeLarge, leaf.Size)
	assert.Equal(FormBox, leaf.Form)

	_, ok = ParseReferentReply("")
	assert.False(ok)

	_, ok = ParseReferentReply("xyzzy")
	assert.False(ok)
}
