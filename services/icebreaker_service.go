package services

import (
	"context"
	"fmt"
	"log"
)

// Composer generates conversational text. Implementations may call a
// remote model; the engine never depends on one succeeding.
type Composer interface {
	GenerateIcebreakers(ctx context.Context, interestsA, interestsB []string) ([]string, error)
	ComposeSafetyMessage(ctx context.Context, userName, friendName, place, timeStr string) (string, error)
}

// StaticComposer is the deterministic, non-networked fallback.
type StaticComposer struct{}

func (StaticComposer) GenerateIcebreakers(_ context.Context, interestsA, interestsB []string) ([]string, error) {
	shared := "hanging out"
	for _, a := range interestsA {
		for _, b := range interestsB {
			if a == b {
				shared = a
				break
			}
		}
	}
	return []string{
		"Hey! I see we both like " + shared + ".",
		"What's the best thing you've done recently?",
		"Hi! How is your week going?",
	}, nil
}

func (StaticComposer) ComposeSafetyMessage(_ context.Context, userName, friendName, place, timeStr string) (string, error) {
	return fmt.Sprintf("EMERGENCY ALERT: %s triggered a safety alert.\nMeeting: %s\nLocation: %s\nTime: %s",
		userName, friendName, place, timeStr), nil
}

// IcebreakerService wraps a Composer with the fallback policy: any failure
// or short answer degrades to StaticComposer output instead of an error.
type IcebreakerService struct {
	Composer Composer
}

// Icebreakers always returns exactly three suggestions.
func (s *IcebreakerService) Icebreakers(ctx context.Context, interestsA, interestsB []string) []string {
	if s.Composer != nil {
		lines, err := s.Composer.GenerateIcebreakers(ctx, interestsA, interestsB)
		if err == nil && len(lines) >= 3 {
			return lines[:3]
		}
		if err != nil {
			log.Printf("Icebreaker composer failed, using fallback: %v", err)
		}
	}
	lines, _ := StaticComposer{}.GenerateIcebreakers(ctx, interestsA, interestsB)
	return lines
}

// SafetyMessage always returns a usable alert body.
func (s *IcebreakerService) SafetyMessage(ctx context.Context, userName, friendName, place, timeStr string) string {
	if s.Composer != nil {
		body, err := s.Composer.ComposeSafetyMessage(ctx, userName, friendName, place, timeStr)
		if err == nil && body != "" {
			return body
		}
		if err != nil {
			log.Printf("Safety composer failed, using fallback: %v", err)
		}
	}
	body, _ := StaticComposer{}.ComposeSafetyMessage(ctx, userName, friendName, place, timeStr)
	return body
}
