package sqlite

import (
	"context"
	"testing"

	"github.com/dekarrin/shrdlite/internal/blocks"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) dao.Store {
	t.Helper()

	st, err := NewDatastore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

func testWorld() *blocks.World {
	return &blocks.World{
		Stacks:  [][]string{{"e"}, {}, {"a"}},
		Arm:     0,
		Holding: "",
		Objects: map[string]blocks.ObjectDef{
			"a": {Form: blocks.FormBall, Size: blocks.SizeSmall, Color: "white"},
			"e": {Form: blocks.FormBox, Size: blocks.SizeLarge, Color: "yellow"},
		},
	}
}

func TestSessionsDB_CreateAndGet(t *testing.T) {
	assert := assert.New(t)
	st := testStore(t)
	ctx := context.Background()

	created, err := st.Sessions().Create(ctx, dao.Session{
		World: testWorld(),
		Amb:   blocks.NewSession(),
	})
	require.NoError(t, err)
	assert.NotEqual(uuid.UUID{}, created.ID)

	got, err := st.Sessions().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(created.ID, got.ID)
	assert.Equal(testWorld().Stacks, got.World.Stacks)
	assert.Equal(testWorld().Objects, got.World.Objects)
	assert.False(got.Amb.Pending())
}

func TestSessionsDB_GetMissingIsNotFound(t *testing.T) {
	st := testStore(t)

	_, err := st.Sessions().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestSessionsDB_UpdatePersistsPendingAmbiguity(t *testing.T) {
	assert := assert.New(t)
	st := testStore(t)
	ctx := context.Background()

	created, err := st.Sessions().Create(ctx, dao.Session{
		World: testWorld(),
		Amb:   blocks.NewSession(),
	})
	require.NoError(t, err)

	// suspend mid-clarification, then update: a server restart must be able
	// to resume the dialogue exactly where it left off.
	created.World.Arm = 2
	created.Amb.SuspendForReferent(&blocks.PendingResolution{
		Movable: []string{"a", "e"},
		Side:    blocks.SideMovable,
		QM:      blocks.QuantThe,
	}, "Do you mean the ball or the box?")

	_, err = st.Sessions().Update(ctx, created.ID, created)
	require.NoError(t, err)

	got, err := st.Sessions().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(2, got.World.Arm)
	require.True(t, got.Amb.Pending())
	assert.Equal([]string{"a", "e"}, got.Amb.PendingResolution.Movable)
	assert.Equal("Do you mean the ball or the box?", got.Amb.PromptText)
}

func TestSessionsDB_UpdateMissingIsNotFound(t *testing.T) {
	st := testStore(t)

	_, err := st.Sessions().Update(context.Background(), uuid.New(), dao.Session{
		World: testWorld(),
		Amb:   blocks.NewSession(),
	})
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestSessionsDB_Delete(t *testing.T) {
	assert := assert.New(t)
	st := testStore(t)
	ctx := context.Background()

	created, err := st.Sessions().Create(ctx, dao.Session{
		World: testWorld(),
		Amb:   blocks.NewSession(),
	})
	require.NoError(t, err)

	deleted, err := st.Sessions().Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(created.ID, deleted.ID)

	_, err = st.Sessions().GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func TestCommandsDB_CreateAndGetAllBySession(t *testing.T) {
	assert := assert.New(t)
	st := testStore(t)
	ctx := context.Background()

	sesh, err := st.Sessions().Create(ctx, dao.Session{
		World: testWorld(),
		Amb:   blocks.NewSession(),
	})
	require.NoError(t, err)

	first, err := st.Commands().Create(ctx, dao.Command{
		SessionID: sesh.ID,
		Utterance: "take the ball",
		Response:  []string{"r", "r", "Moving the ball", "p"},
	})
	require.NoError(t, err)
	assert.NotEqual(uuid.UUID{}, first.ID)

	_, err = st.Commands().Create(ctx, dao.Command{
		SessionID: sesh.ID,
		Utterance: "juggle the ball",
		ErrMsg:    "Sorry I cannot understand this, please try again.",
	})
	require.NoError(t, err)

	all, err := st.Commands().GetAllBySession(ctx, sesh.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal("take the ball", all[0].Utterance)
	assert.Equal([]string{"r", "r", "Moving the ball", "p"}, all[0].Response)
	assert.Empty(all[0].ErrMsg)
	assert.Equal("juggle the ball", all[1].Utterance)
	assert.Empty(all[1].Response)
	assert.NotEmpty(all[1].ErrMsg)

	// commands for one session never leak into another's transcript.
	other, err := st.Commands().GetAllBySession(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(other)
}
