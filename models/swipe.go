package models

// SwipeVote records one user's directional vote on another. The pair
// (voterId, targetId) is the table key, so a later vote on the same pair
// overwrites the earlier one.
type SwipeVote struct {
	VoterID   string `dynamodbav:"voterId" json:"voterId"`
	TargetID  string `dynamodbav:"targetId" json:"targetId"`
	Direction string `dynamodbav:"direction" json:"direction"`
	VotedAt   int64  `dynamodbav:"votedAt" json:"votedAt"`
}

// SwipesTable is the DynamoDB table name for swipe votes.
const SwipesTable = "Swipes"
