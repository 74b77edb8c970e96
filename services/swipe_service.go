package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"kindred_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// SwipeService records directional votes and turns mutual likes into a
// match. Match creation is race-free without a lock: both sides compute
// the same deterministic match id and write it merge-on-write, so whoever
// evaluates second simply finds the record already there.
type SwipeService struct {
	Dynamo *DynamoService
	Blocks *BlockService
	Chat   *ChatService
}

// MatchIDFor derives the canonical match id for a pair of users. The ids
// are sorted first, so MatchIDFor(a, b) == MatchIDFor(b, a).
func MatchIDFor(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

// RecordSwipe stores the vote and evaluates reciprocity. Returns the match
// when the vote completes a mutual like, nil otherwise. Re-recording the
// same vote is harmless: the vote overwrites itself and the match write
// converges on the existing record.
func (s *SwipeService) RecordSwipe(ctx context.Context, voterID, targetID, direction string) (*models.Match, error) {
	if voterID == "" || targetID == "" {
		return nil, errors.New("voterId and targetId are required")
	}
	if voterID == targetID {
		return nil, errors.New("cannot swipe on yourself")
	}
	if direction != models.DirectionLike && direction != models.DirectionPass {
		return nil, fmt.Errorf("invalid direction %q", direction)
	}

	blocked, err := s.Blocks.IsBlockedEither(ctx, voterID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blocks: %w", err)
	}
	if blocked {
		return nil, fmt.Errorf("swipe between %s and %s: %w", voterID, targetID, models.ErrPermissionDenied)
	}

	vote := models.SwipeVote{
		VoterID:   voterID,
		TargetID:  targetID,
		Direction: direction,
		VotedAt:   time.Now().UnixMilli(),
	}
	if err := s.Dynamo.PutItem(ctx, models.SwipesTable, vote); err != nil {
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	if direction == models.DirectionPass {
		// A pass only filters the target out of the voter's discovery.
		return nil, nil
	}
	return s.evaluate(ctx, voterID, targetID)
}

// evaluate checks the reciprocal vote and creates (or finds) the match.
func (s *SwipeService) evaluate(ctx context.Context, voterID, targetID string) (*models.Match, error) {
	reciprocal, err := s.getVote(ctx, targetID, voterID)
	if err != nil {
		return nil, err
	}
	if reciprocal == nil || reciprocal.Direction != models.DirectionLike {
		// Stored for the day the other side votes.
		return nil, nil
	}

	matchID := MatchIDFor(voterID, targetID)
	userA, userB := voterID, targetID
	if userA > userB {
		userA, userB = userB, userA
	}
	now := time.Now().UnixMilli()
	match := models.Match{
		MatchID:         matchID,
		UserA:           userA,
		UserB:           userB,
		CreatedAt:       now,
		LastMessage:     models.WelcomeMessage,
		LastMessageTime: now,
		ReadCursors:     map[string]int64{},
	}

	created, err := s.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, "matchId", match)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	if !created {
		// The other side's evaluation won the write; use its record.
		return s.loadMatch(ctx, matchID)
	}

	log.Printf("Match %s created for %s and %s", matchID, userA, userB)
	if _, err := s.Chat.SendMessage(ctx, models.Message{
		MatchID:  matchID,
		SenderID: models.SystemSenderID,
		Text:     models.WelcomeMessage,
	}); err != nil {
		log.Printf("Failed to seed welcome message for match %s: %v", matchID, err)
	}
	return s.loadMatch(ctx, matchID)
}

func (s *SwipeService) getVote(ctx context.Context, voterID, targetID string) (*models.SwipeVote, error) {
	item, err := s.Dynamo.GetItem(ctx, models.SwipesTable, PairKey("voterId", voterID, "targetId", targetID))
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote %s->%s: %w", voterID, targetID, err)
	}
	var vote models.SwipeVote
	if err := attributevalue.UnmarshalMap(item, &vote); err != nil {
		return nil, fmt.Errorf("failed to parse vote: %w", err)
	}
	return &vote, nil
}

// GetSwipedTargetIDs returns every target the voter has already voted on,
// in either direction. Discovery uses it so swiped users stop showing up.
func (s *SwipeService) GetSwipedTargetIDs(ctx context.Context, voterID string) (map[string]struct{}, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.SwipesTable, "voterId = :voterId",
		stringValues(map[string]string{":voterId": voterID}), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swipes for %s: %w", voterID, err)
	}

	var votes []models.SwipeVote
	if err := attributevalue.UnmarshalListOfMaps(items, &votes); err != nil {
		return nil, fmt.Errorf("failed to parse swipes: %w", err)
	}

	targets := make(map[string]struct{}, len(votes))
	for _, vote := range votes {
		targets[vote.TargetID] = struct{}{}
	}
	return targets, nil
}

func (s *SwipeService) loadMatch(ctx context.Context, matchID string) (*models.Match, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, StringKey("matchId", matchID))
	if err != nil {
		return nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to parse match: %w", err)
	}
	return &match, nil
}
