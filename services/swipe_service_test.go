package services

import (
	"context"
	"testing"

	"kindred_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchIDForIsOrderIndependent(t *testing.T) {
	assert.Equal(t, "alice_bob", MatchIDFor("alice", "bob"))
	assert.Equal(t, "alice_bob", MatchIDFor("bob", "alice"))
	assert.Equal(t, MatchIDFor("u1", "u2"), MatchIDFor("u2", "u1"))
}

func TestRecordSwipeSingleLikeDoesNotMatch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	match, err := env.swipes.RecordSwipe(ctx, "alice", "bob", models.DirectionLike)
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Equal(t, 0, env.fake.count(models.MatchesTable))
}

func TestRecordSwipeMutualLikeCreatesMatch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.swipes.RecordSwipe(ctx, "alice", "bob", models.DirectionLike)
	require.NoError(t, err)

	match, err := env.swipes.RecordSwipe(ctx, "bob", "alice", models.DirectionLike)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "alice_bob", match.MatchID)
	assert.Equal(t, "alice", match.UserA)
	assert.Equal(t, "bob", match.UserB)

	// The new conversation opens with the system welcome message.
	messages, err := env.chat.GetMessagesByMatchID(ctx, match.MatchID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, models.SystemSenderID, messages[0].SenderID)
	assert.Equal(t, models.WelcomeMessage, messages[0].Text)
	assert.Equal(t, models.WelcomeMessage, match.LastMessage)
}

func TestRecordSwipeMatchIsCreatedExactlyOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.swipes.RecordSwipe(ctx, "alice", "bob", models.DirectionLike)
	require.NoError(t, err)
	first, err := env.swipes.RecordSwipe(ctx, "bob", "alice", models.DirectionLike)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Re-recording either vote converges on the existing match instead of
	// creating a second one or re-seeding the welcome message.
	second, err := env.swipes.RecordSwipe(ctx, "alice", "bob", models.DirectionLike)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.MatchID, second.MatchID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	assert.Equal(t, 1, env.fake.count(models.MatchesTable))
	messages, err := env.chat.GetMessagesByMatchID(ctx, first.MatchID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestRecordSwipePassNeverMatches(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.swipes.RecordSwipe(ctx, "alice", "bob", models.DirectionLike)
	require.NoError(t, err)

	match, err := env.swipes.RecordSwipe(ctx, "bob", "alice", models.DirectionPass)
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Equal(t, 0, env.fake.count(models.MatchesTable))

	// A later like overwrites the pass and completes the pair.
	match, err = env.swipes.RecordSwipe(ctx, "bob", "alice", models.DirectionLike)
	require.NoError(t, err)
	assert.NotNil(t, match)
}

func TestRecordSwipeRejectsSelfAndBadDirection(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.swipes.RecordSwipe(ctx, "alice", "alice", models.DirectionLike)
	assert.Error(t, err)

	_, err = env.swipes.RecordSwipe(ctx, "alice", "bob", "superlike")
	assert.Error(t, err)

	_, err = env.swipes.RecordSwipe(ctx, "", "bob", models.DirectionLike)
	assert.Error(t, err)
}

func TestRecordSwipeBlockedPairIsDenied(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.NoError(t, env.blocks.BlockUser(ctx, "alice", "bob", ""))

	_, err := env.swipes.RecordSwipe(ctx, "alice", "bob", models.DirectionLike)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	// The block covers both directions.
	_, err = env.swipes.RecordSwipe(ctx, "bob", "alice", models.DirectionLike)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
}

func TestGetSwipedTargetIDs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.swipes.RecordSwipe(ctx, "alice", "bob", models.DirectionLike)
	require.NoError(t, err)
	_, err = env.swipes.RecordSwipe(ctx, "alice", "carol", models.DirectionPass)
	require.NoError(t, err)

	targets, err := env.swipes.GetSwipedTargetIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, targets, 2)
	assert.Contains(t, targets, "bob")
	assert.Contains(t, targets, "carol")
}
