package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"kindred_server/models"
	"kindred_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type MatchService struct {
	Dynamo *DynamoService
}

// GetMatch retrieves a match by id.
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, StringKey("matchId", matchID))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("match %s: %w", matchID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to parse match: %w", err)
	}
	return &match, nil
}

// GetMatchForUser retrieves a match the caller is a member of.
func (s *MatchService) GetMatchForUser(ctx context.Context, matchID, userID string) (*models.Match, error) {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Member(userID) {
		return nil, fmt.Errorf("user %s is not a member of match %s: %w", userID, matchID, models.ErrPermissionDenied)
	}
	return match, nil
}

// GetMatchesForUser lists a user's matches, most recently active first.
func (s *MatchService) GetMatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	if userID == "" {
		return nil, errors.New("userId is required")
	}

	var matches []models.Match
	err := s.Dynamo.ScanWithFilter(ctx, models.MatchesTable, nil, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "userA") == userID || utils.ExtractString(item, "userB") == userID
	}, &matches)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for %s: %w", userID, err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].LastMessageTime > matches[j].LastMessageTime
	})
	return matches, nil
}
