package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"kindred_server/models"
	"kindred_server/realtime"
	"kindred_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// BlockService owns blocking and unmatching: the two operations that
// revoke a pair's shared state.
type BlockService struct {
	Dynamo *DynamoService
	Hub    *realtime.Hub
}

// BlockUser records a one-directional block and, when a match id is given,
// tears the match down as well. The block record persists regardless of
// what later happens to the match.
func (s *BlockService) BlockUser(ctx context.Context, blockerID, blockedID, matchID string) error {
	if blockerID == "" || blockedID == "" {
		return errors.New("blockerId and blockedId are required")
	}

	block := models.Block{
		BlockerID: blockerID,
		BlockedID: blockedID,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.Dynamo.PutItem(ctx, models.BlocksTable, block); err != nil {
		return fmt.Errorf("failed to record block: %w", err)
	}
	log.Printf("User %s blocked %s", blockerID, blockedID)

	if matchID != "" {
		return s.Unmatch(ctx, matchID)
	}
	return nil
}

// Unmatch deletes every message and meetup of the match, then the match
// record itself, then tells subscribers the match is closed. Children go
// first so the match row marks an incomplete cascade: a retry after a
// partial failure finds the match still present and resumes, and nothing
// can leak into a later re-match of the same pair. Calling it on an
// already-deleted match is a no-op.
func (s *BlockService) Unmatch(ctx context.Context, matchID string) error {
	if matchID == "" {
		return errors.New("matchId is required")
	}

	_, err := s.Dynamo.GetItem(ctx, models.MatchesTable, StringKey("matchId", matchID))
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load match %s: %w", matchID, err)
	}

	if err := s.deleteChildren(ctx, models.MessagesTable, "messageId", matchID); err != nil {
		return err
	}
	if err := s.deleteChildren(ctx, models.MeetupsTable, "meetupId", matchID); err != nil {
		return err
	}
	if err := s.Dynamo.DeleteItem(ctx, models.MatchesTable, StringKey("matchId", matchID)); err != nil {
		return err
	}

	log.Printf("Match %s removed", matchID)
	if s.Hub != nil {
		s.Hub.Publish(realtime.MatchTopic(matchID), realtime.MatchClosed{MatchID: matchID})
	}
	return nil
}

// deleteChildren removes all items of a match from a child table keyed
// (matchId, sortAttribute).
func (s *BlockService) deleteChildren(ctx context.Context, tableName, sortAttribute, matchID string) error {
	items, err := s.Dynamo.QueryItems(ctx, tableName, "matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		}, nil, 0)
	if err != nil {
		return fmt.Errorf("failed to list %s items for match %s: %w", tableName, matchID, err)
	}
	if len(items) == 0 {
		return nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		sortValue := utils.ExtractString(item, sortAttribute)
		if sortValue == "" {
			continue
		}
		keys = append(keys, PairKey("matchId", matchID, sortAttribute, sortValue))
	}
	return s.Dynamo.BatchDeleteItems(ctx, tableName, keys)
}

// GetBlockedUserIDs returns the set of users blockerID has blocked.
func (s *BlockService) GetBlockedUserIDs(ctx context.Context, blockerID string) (map[string]struct{}, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.BlocksTable, "blockerId = :blockerId",
		map[string]types.AttributeValue{
			":blockerId": &types.AttributeValueMemberS{Value: blockerID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks for %s: %w", blockerID, err)
	}

	blocked := make(map[string]struct{}, len(items))
	for _, item := range items {
		if id := utils.ExtractString(item, "blockedId"); id != "" {
			blocked[id] = struct{}{}
		}
	}
	return blocked, nil
}

// IsBlockedEither reports whether a block exists between the two users in
// either direction.
func (s *BlockService) IsBlockedEither(ctx context.Context, userA, userB string) (bool, error) {
	for _, pair := range [][2]string{{userA, userB}, {userB, userA}} {
		_, err := s.Dynamo.GetItem(ctx, models.BlocksTable, PairKey("blockerId", pair[0], "blockedId", pair[1]))
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return false, err
		}
	}
	return false, nil
}
