package services

import (
	"context"
	"testing"
	"time"

	"kindred_server/models"
	"kindred_server/realtime"

	"github.com/stretchr/testify/require"
)

// testEnv wires every service against one shared in-memory store, the way
// main wires them against DynamoDB.
type testEnv struct {
	fake      *fakeDynamo
	dynamo    *DynamoService
	hub       *realtime.Hub
	blocks    *BlockService
	chat      *ChatService
	swipes    *SwipeService
	meetups   *MeetupService
	matches   *MatchService
	profiles  *UserProfileService
	discovery *DiscoveryService
}

func newTestEnv() *testEnv {
	fake := newFakeDynamo()
	dynamo := &DynamoService{Client: fake}
	hub := realtime.NewHub()

	blocks := &BlockService{Dynamo: dynamo, Hub: hub}
	chat := &ChatService{Dynamo: dynamo, Hub: hub}
	swipes := &SwipeService{Dynamo: dynamo, Blocks: blocks, Chat: chat}

	return &testEnv{
		fake:      fake,
		dynamo:    dynamo,
		hub:       hub,
		blocks:    blocks,
		chat:      chat,
		swipes:    swipes,
		meetups:   &MeetupService{Dynamo: dynamo, Chat: chat, Hub: hub},
		matches:   &MatchService{Dynamo: dynamo},
		profiles:  &UserProfileService{Dynamo: dynamo},
		discovery: &DiscoveryService{Dynamo: dynamo, Blocks: blocks, Swipes: swipes},
	}
}

// seedMatch stores a match record directly, skipping the swipe flow.
func (e *testEnv) seedMatch(t *testing.T, userA, userB string) *models.Match {
	t.Helper()
	match := models.Match{
		MatchID:     MatchIDFor(userA, userB),
		UserA:       userA,
		UserB:       userB,
		CreatedAt:   time.Now().UnixMilli(),
		ReadCursors: map[string]int64{},
	}
	if match.UserA > match.UserB {
		match.UserA, match.UserB = match.UserB, match.UserA
	}
	require.NoError(t, e.dynamo.PutItem(context.Background(), models.MatchesTable, match))
	return &match
}

// seedProfile stores a minimal user profile.
func (e *testEnv) seedProfile(t *testing.T, userID, city string, interests ...string) {
	t.Helper()
	require.NoError(t, e.profiles.SaveProfile(context.Background(), models.UserProfile{
		UserID:    userID,
		Name:      "User " + userID,
		City:      city,
		Interests: interests,
	}))
}
