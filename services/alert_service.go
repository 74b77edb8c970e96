package services

import (
	"context"
	"fmt"
	"log"
)

// Notifier delivers a composed alert to a recipient list. Delivery
// success is logged, never propagated: a failing mail gateway must not
// block the user's safety flow.
type Notifier interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// LogNotifier is the default Notifier; it only logs. Real deployments
// plug in a mail or SMS gateway.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, recipients []string, subject, _ string) error {
	log.Printf("Alert %q queued for %d recipient(s)", subject, len(recipients))
	return nil
}

// AlertService composes and dispatches safety alerts to a user's trusted
// contacts before a meetup.
type AlertService struct {
	Profiles    *UserProfileService
	Icebreakers *IcebreakerService
	Notifier    Notifier
}

// SendSafetyAlert composes the alert body for userID's meetup and hands it
// to the notifier addressed to their trusted contacts.
func (s *AlertService) SendSafetyAlert(ctx context.Context, userID, friendName, place, timeStr string) error {
	profile, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load profile for alert: %w", err)
	}
	if len(profile.TrustedContacts) == 0 {
		log.Printf("User %s has no trusted contacts; safety alert skipped", userID)
		return nil
	}

	name := profile.Name
	if name == "" {
		name = userID
	}
	body := s.Icebreakers.SafetyMessage(ctx, name, friendName, place, timeStr)

	subject := fmt.Sprintf("Safety alert from %s", name)
	if err := s.Notifier.Send(ctx, profile.TrustedContacts, subject, body); err != nil {
		log.Printf("Safety alert delivery for %s failed: %v", userID, err)
	}
	return nil
}
