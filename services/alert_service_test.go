package services

import (
	"context"
	"errors"
	"testing"

	"kindred_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	recipients []string
	subject    string
	body       string
	calls      int
	err        error
}

func (n *recordingNotifier) Send(_ context.Context, recipients []string, subject, body string) error {
	n.recipients = recipients
	n.subject = subject
	n.body = body
	n.calls++
	return n.err
}

func newAlertEnv(notifier Notifier) (*testEnv, *AlertService) {
	env := newTestEnv()
	return env, &AlertService{
		Profiles:    env.profiles,
		Icebreakers: &IcebreakerService{},
		Notifier:    notifier,
	}
}

func TestSendSafetyAlertDeliversToTrustedContacts(t *testing.T) {
	notifier := &recordingNotifier{}
	env, alerts := newAlertEnv(notifier)
	ctx := context.Background()

	require.NoError(t, env.profiles.SaveProfile(ctx, models.UserProfile{
		UserID:          "alice",
		Name:            "Alice",
		TrustedContacts: []string{"mom@example.com", "sis@example.com"},
	}))

	require.NoError(t, alerts.SendSafetyAlert(ctx, "alice", "Bob", "Dolores Park", "3pm"))
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, []string{"mom@example.com", "sis@example.com"}, notifier.recipients)
	assert.Contains(t, notifier.body, "Alice")
	assert.Contains(t, notifier.body, "Dolores Park")
}

func TestSendSafetyAlertNoTrustedContacts(t *testing.T) {
	notifier := &recordingNotifier{}
	env, alerts := newAlertEnv(notifier)
	ctx := context.Background()

	require.NoError(t, env.profiles.SaveProfile(ctx, models.UserProfile{UserID: "alice", Name: "Alice"}))

	require.NoError(t, alerts.SendSafetyAlert(ctx, "alice", "Bob", "Dolores Park", "3pm"))
	assert.Equal(t, 0, notifier.calls)
}

func TestSendSafetyAlertUnknownProfile(t *testing.T) {
	_, alerts := newAlertEnv(&recordingNotifier{})

	err := alerts.SendSafetyAlert(context.Background(), "ghost", "Bob", "Dolores Park", "3pm")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSendSafetyAlertSwallowsDeliveryErrors(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	env, alerts := newAlertEnv(notifier)
	ctx := context.Background()

	require.NoError(t, env.profiles.SaveProfile(ctx, models.UserProfile{
		UserID:          "alice",
		TrustedContacts: []string{"mom@example.com"},
	}))

	assert.NoError(t, alerts.SendSafetyAlert(ctx, "alice", "Bob", "Dolores Park", "3pm"))
	assert.Equal(t, 1, notifier.calls)
}
