package services

import (
	"context"
	"errors"
	"fmt"

	"kindred_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

type UserProfileService struct {
	Dynamo *DynamoService
}

// SaveProfile creates or replaces a user profile.
func (s *UserProfileService) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	if profile.UserID == "" {
		return errors.New("userId is required")
	}
	if err := s.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a user profile by id.
func (s *UserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UserProfilesTable, StringKey("userId", userID))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("profile %s: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", userID, err)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

// DeleteProfile removes a user profile.
func (s *UserProfileService) DeleteProfile(ctx context.Context, userID string) error {
	return s.Dynamo.DeleteItem(ctx, models.UserProfilesTable, StringKey("userId", userID))
}
