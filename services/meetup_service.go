package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"kindred_server/models"
	"kindred_server/realtime"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MeetupService tracks scheduling proposals inside a match. Every proposal
// is announced with a system message in the conversation, so it is always
// discoverable in-line with the chat.
type MeetupService struct {
	Dynamo *DynamoService
	Chat   *ChatService
	Hub    *realtime.Hub
}

// ProposeMeetup creates a proposal in "proposed" status and appends the
// announcing system message carrying the meetup id. The match must exist
// before anything is written; match ids are guessable sorted pairs, so an
// unchecked put would let callers pre-seed proposals into a future match.
func (s *MeetupService) ProposeMeetup(ctx context.Context, matchID, place, scheduledAt, notes string) (*models.Meetup, error) {
	if matchID == "" || place == "" || scheduledAt == "" {
		return nil, errors.New("matchId, place and scheduledAt are required")
	}
	if _, err := s.Chat.getMatch(ctx, matchID); err != nil {
		return nil, err
	}

	meetup := models.Meetup{
		MatchID:     matchID,
		MeetupID:    uuid.NewString(),
		Place:       place,
		ScheduledAt: scheduledAt,
		Status:      models.MeetupStatusProposed,
		Notes:       notes,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := s.Dynamo.PutItem(ctx, models.MeetupsTable, meetup); err != nil {
		return nil, fmt.Errorf("failed to store meetup: %w", err)
	}

	text := fmt.Sprintf("Meetup proposed: %s at %s", place, scheduledAt)
	if _, err := s.Chat.SendMessage(ctx, models.Message{
		MatchID:  matchID,
		SenderID: models.SystemSenderID,
		Text:     text,
		MeetupID: meetup.MeetupID,
	}); err != nil {
		return nil, fmt.Errorf("failed to announce meetup: %w", err)
	}

	s.publishMeetups(ctx, matchID)
	return &meetup, nil
}

// AcceptMeetup moves a proposal from "proposed" to "accepted".
func (s *MeetupService) AcceptMeetup(ctx context.Context, matchID, meetupID string) error {
	return s.transition(ctx, matchID, meetupID, models.MeetupStatusAccepted)
}

// CancelMeetup moves a proposal from "proposed" to "cancelled".
func (s *MeetupService) CancelMeetup(ctx context.Context, matchID, meetupID string) error {
	return s.transition(ctx, matchID, meetupID, models.MeetupStatusCancelled)
}

// transition applies a guarded status change. Only "proposed" proposals
// may move; anything else is an invalid transition.
func (s *MeetupService) transition(ctx context.Context, matchID, meetupID, next string) error {
	if matchID == "" || meetupID == "" {
		return errors.New("matchId and meetupId are required")
	}

	key := PairKey("matchId", matchID, "meetupId", meetupID)
	if _, err := s.Dynamo.GetItem(ctx, models.MeetupsTable, key); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("meetup %s in match %s: %w", meetupID, matchID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to load meetup %s: %w", meetupID, err)
	}

	_, err := s.Dynamo.UpdateItemWithCondition(ctx, models.MeetupsTable,
		"SET #status = :next",
		"#status = :proposed",
		key,
		map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: next},
			":proposed": &types.AttributeValueMemberS{Value: models.MeetupStatusProposed},
		},
		map[string]string{"#status": "status"},
	)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return fmt.Errorf("meetup %s is not in %q status: %w", meetupID, models.MeetupStatusProposed, models.ErrInvalidTransition)
		}
		return fmt.Errorf("failed to update meetup %s: %w", meetupID, err)
	}

	log.Printf("Meetup %s in match %s moved to %s", meetupID, matchID, next)
	s.publishMeetups(ctx, matchID)
	return nil
}

// GetMeetupsByMatchID returns a match's proposals ascending by creation.
func (s *MeetupService) GetMeetupsByMatchID(ctx context.Context, matchID string) ([]models.Meetup, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.MeetupsTable, "#matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		},
		map[string]string{"#matchId": "matchId"}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meetups: %w", err)
	}

	var meetups []models.Meetup
	if err := attributevalue.UnmarshalListOfMaps(items, &meetups); err != nil {
		return nil, fmt.Errorf("failed to parse meetups: %w", err)
	}

	sort.SliceStable(meetups, func(i, j int) bool {
		return meetups[i].CreatedAt < meetups[j].CreatedAt
	})
	return meetups, nil
}

func (s *MeetupService) publishMeetups(ctx context.Context, matchID string) {
	if s.Hub == nil {
		return
	}
	meetups, err := s.GetMeetupsByMatchID(ctx, matchID)
	if err != nil {
		log.Printf("Failed to load meetups for publish on match %s: %v", matchID, err)
		return
	}
	s.Hub.Publish(realtime.MeetupsTopic(matchID), meetups)
}
