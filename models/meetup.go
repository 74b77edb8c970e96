package models

// Meetup is a scheduling proposal inside a match. It starts as "proposed";
// acceptance and cancellation are guarded transitions out of that state.
type Meetup struct {
	MatchID     string `dynamodbav:"matchId" json:"matchId"`
	MeetupID    string `dynamodbav:"meetupId" json:"meetupId"`
	Place       string `dynamodbav:"place" json:"place"`
	ScheduledAt string `dynamodbav:"scheduledAt" json:"scheduledAt"`
	Status      string `dynamodbav:"status" json:"status"`
	Notes       string `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   int64  `dynamodbav:"createdAt" json:"createdAt"`
}

// MeetupsTable is the DynamoDB table name for meetup proposals.
const MeetupsTable = "Meetups"
