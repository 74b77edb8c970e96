package services

import (
	"context"
	"errors"
	"fmt"

	"kindred_server/models"
	"kindred_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DiscoveryService serves candidate profiles for the swipe deck: same
// city, minus the user themselves, anyone they already voted on, and
// anyone they blocked. The block exclusion is permanent.
type DiscoveryService struct {
	Dynamo *DynamoService
	Blocks *BlockService
	Swipes *SwipeService
}

// GetDiscoverUsers returns candidate profiles for userID in the given city.
func (s *DiscoveryService) GetDiscoverUsers(ctx context.Context, userID, city string) ([]models.UserProfile, error) {
	if userID == "" {
		return nil, errors.New("userId is required")
	}
	if city == "" {
		return []models.UserProfile{}, nil
	}

	blocked, err := s.Blocks.GetBlockedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	swiped, err := s.Swipes.GetSwipedTargetIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var profiles []models.UserProfile
	err = s.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable,
		map[string]string{"city": city},
		func(item map[string]types.AttributeValue) bool {
			candidate := utils.ExtractString(item, "userId")
			if candidate == "" || candidate == userID {
				return false
			}
			if _, ok := blocked[candidate]; ok {
				return false
			}
			if _, ok := swiped[candidate]; ok {
				return false
			}
			return true
		}, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discovery candidates: %w", err)
	}

	if profiles == nil {
		profiles = []models.UserProfile{}
	}
	return profiles, nil
}
