package models

// Message is one entry in a match's append-only conversation. MessageID is
// chosen client-side and doubles as the idempotency key for retried sends.
// SentAt is assigned server-side from a per-match monotonic clock.
type Message struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Text      string `dynamodbav:"text" json:"text"`
	SentAt    int64  `dynamodbav:"sentAt" json:"sentAt"`
	MeetupID  string `dynamodbav:"meetupId,omitempty" json:"meetupId,omitempty"`
}

// System reports whether the message was authored by the server.
func (m *Message) System() bool {
	return m.SenderID == SystemSenderID
}

// MessagesTable is the DynamoDB table name for conversation messages.
const MessagesTable = "Messages"
