package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"kindred_server/models"
	"kindred_server/realtime"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService is the append-only conversation stream of a match. Every
// append also refreshes the parent match's snippet and pushes the full
// ordered message list to subscribers.
type ChatService struct {
	Dynamo *DynamoService
	Hub    *realtime.Hub

	mu         sync.Mutex
	lastSentAt map[string]int64
}

// nextSentAt returns a strictly increasing millisecond timestamp per
// match, so the ordering key never ties or regresses under concurrent
// senders on this process.
func (s *ChatService) nextSentAt(matchID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSentAt == nil {
		s.lastSentAt = make(map[string]int64)
	}
	now := time.Now().UnixMilli()
	if last := s.lastSentAt[matchID]; now <= last {
		now = last + 1
	}
	s.lastSentAt[matchID] = now
	return now
}

// SendMessage appends a message to a match's conversation. The client may
// supply MessageID; retries with the same id return the stored message
// instead of duplicating it. A MeetupID must reference a meetup of the
// same match.
func (s *ChatService) SendMessage(ctx context.Context, msg models.Message) (*models.Message, error) {
	if msg.MatchID == "" || msg.SenderID == "" || msg.Text == "" {
		return nil, errors.New("matchId, senderId and text are required")
	}
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}

	match, err := s.getMatch(ctx, msg.MatchID)
	if err != nil {
		return nil, err
	}
	if !msg.System() && !match.Member(msg.SenderID) {
		return nil, fmt.Errorf("sender %s is not a member of match %s: %w", msg.SenderID, msg.MatchID, models.ErrPermissionDenied)
	}

	if msg.MeetupID != "" {
		_, err := s.Dynamo.GetItem(ctx, models.MeetupsTable, PairKey("matchId", msg.MatchID, "meetupId", msg.MeetupID))
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("meetup %s does not belong to match %s: %w", msg.MeetupID, msg.MatchID, models.ErrInvalidReference)
		}
		if err != nil {
			return nil, err
		}
	}

	msg.SentAt = s.nextSentAt(msg.MatchID)

	created, err := s.Dynamo.PutItemIfAbsent(ctx, models.MessagesTable, "messageId", msg)
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	if !created {
		// Retried send: hand back what the first attempt stored.
		item, err := s.Dynamo.GetItem(ctx, models.MessagesTable, PairKey("matchId", msg.MatchID, "messageId", msg.MessageID))
		if err != nil {
			return nil, fmt.Errorf("failed to load existing message %s: %w", msg.MessageID, err)
		}
		var stored models.Message
		if err := attributevalue.UnmarshalMap(item, &stored); err != nil {
			return nil, fmt.Errorf("failed to parse existing message: %w", err)
		}
		return &stored, nil
	}

	if err := s.updateSnippet(ctx, msg.MatchID, msg.Text, msg.SentAt); err != nil {
		log.Printf("Failed to update snippet for match %s: %v", msg.MatchID, err)
	}

	s.publishMessages(ctx, msg.MatchID)
	return &msg, nil
}

// GetMessagesByMatchID returns the full conversation sorted ascending by
// sentAt.
func (s *ChatService) GetMessagesByMatchID(ctx context.Context, matchID string) ([]models.Message, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, "#matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		},
		map[string]string{"#matchId": "matchId"}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].SentAt < messages[j].SentAt
	})
	return messages, nil
}

// MarkMatchRead advances userID's read cursor on the match to readAt. The
// cursor never regresses: a stale timestamp is silently ignored. The
// counterpart derives read state by comparing this cursor to message
// sentAt values.
func (s *ChatService) MarkMatchRead(ctx context.Context, matchID, userID string, readAt int64) error {
	if matchID == "" || userID == "" {
		return errors.New("matchId and userId are required")
	}

	attrs, err := s.Dynamo.UpdateItemWithCondition(ctx, models.MatchesTable,
		"SET readCursors.#uid = :ts",
		"attribute_exists(matchId) AND (attribute_not_exists(readCursors.#uid) OR readCursors.#uid < :ts)",
		StringKey("matchId", matchID),
		map[string]types.AttributeValue{
			":ts": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", readAt)},
		},
		map[string]string{"#uid": userID},
	)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			// Stale cursor or already-deleted match; both are no-ops.
			return nil
		}
		return fmt.Errorf("failed to update read cursor: %w", err)
	}

	if s.Hub != nil {
		var match models.Match
		if err := attributevalue.UnmarshalMap(attrs, &match); err == nil && match.MatchID != "" {
			s.Hub.Publish(realtime.MatchTopic(matchID), match)
		}
	}
	return nil
}

func (s *ChatService) getMatch(ctx context.Context, matchID string) (*models.Match, error) {
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

// updateSnippet mirrors the latest message onto the parent match record.
func (s *ChatService) updateSnippet(ctx context.Context, matchID, text string, sentAt int64) error {
	_, err := s.Dynamo.UpdateItemWithCondition(ctx, models.MatchesTable,
		"SET lastMessage = :lastMessage, lastMessageTime = :lastMessageTime",
		"attribute_exists(matchId)",
		StringKey("matchId", matchID),
		map[string]types.AttributeValue{
			":lastMessage":     &types.AttributeValueMemberS{Value: text},
			":lastMessageTime": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", sentAt)},
		}, nil,
	)
	if IsConditionalCheckFailed(err) {
		// Match vanished between append and snippet update (unmatch race).
		return nil
	}
	return err
}

// publishMessages pushes the full ordered conversation to subscribers.
func (s *ChatService) publishMessages(ctx context.Context, matchID string) {
	if s.Hub == nil {
		return
	}
	messages, err := s.GetMessagesByMatchID(ctx, matchID)
	if err != nil {
		log.Printf("Failed to load messages for publish on match %s: %v", matchID, err)
		return
	}
	s.Hub.Publish(realtime.MessagesTopic(matchID), messages)
}
