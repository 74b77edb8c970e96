package models

// Block is a one-directional, irrevocable exclusion. It outlives any match
// between the two users and keeps blockedId out of blockerId's discovery
// results permanently.
type Block struct {
	BlockerID string `dynamodbav:"blockerId" json:"blockerId"`
	BlockedID string `dynamodbav:"blockedId" json:"blockedId"`
	CreatedAt int64  `dynamodbav:"createdAt" json:"createdAt"`
}

// BlocksTable is the DynamoDB table name for block records.
const BlocksTable = "Blocks"
