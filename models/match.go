package models

// Match is the canonical record for a mutual pair. Its id is derived from
// the sorted user ids, so both sides of a mutual like compute the same key
// and concurrent creation attempts converge on one item.
type Match struct {
	MatchID         string           `dynamodbav:"matchId" json:"matchId"`
	UserA           string           `dynamodbav:"userA" json:"userA"`
	UserB           string           `dynamodbav:"userB" json:"userB"`
	CreatedAt       int64            `dynamodbav:"createdAt" json:"createdAt"`
	LastMessage     string           `dynamodbav:"lastMessage" json:"lastMessage"`
	LastMessageTime int64            `dynamodbav:"lastMessageTime" json:"lastMessageTime"`
	ReadCursors     map[string]int64 `dynamodbav:"readCursors" json:"readCursors"`
}

// Member reports whether userID is one of the two matched users.
func (m *Match) Member(userID string) bool {
	return userID == m.UserA || userID == m.UserB
}

// Counterpart returns the other member of the match, or "" when userID is
// not a member.
func (m *Match) Counterpart(userID string) string {
	switch userID {
	case m.UserA:
		return m.UserB
	case m.UserB:
		return m.UserA
	}
	return ""
}

// MatchesTable is the DynamoDB table name for matches.
const MatchesTable = "Matches"
