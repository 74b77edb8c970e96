package models

// Swipe directions
const (
	DirectionLike = "like"
	DirectionPass = "pass"
)

// Meetup statuses
const (
	MeetupStatusProposed  = "proposed"
	MeetupStatusAccepted  = "accepted"
	MeetupStatusCancelled = "cancelled"
	MeetupStatusCompleted = "completed"
)

// Report statuses
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
)

// SystemSenderID is the senderId used for server-authored conversation
// messages (match welcome, meetup announcements).
const SystemSenderID = "system"

// WelcomeMessage seeds every new match's conversation.
const WelcomeMessage = "You matched! Say hi 👋"
