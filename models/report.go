package models

// Report records a user report for moderation. The core only records it;
// review workflow lives elsewhere.
type Report struct {
	ReportID  string `dynamodbav:"reportId" json:"reportId"`
	FromID    string `dynamodbav:"fromId" json:"fromId"`
	ToID      string `dynamodbav:"toId" json:"toId"`
	Reason    string `dynamodbav:"reason" json:"reason"`
	Details   string `dynamodbav:"details,omitempty" json:"details,omitempty"`
	Status    string `dynamodbav:"status" json:"status"`
	CreatedAt int64  `dynamodbav:"createdAt" json:"createdAt"`
}

// ReportReasons are the accepted values for Report.Reason.
var ReportReasons = []string{"spam", "harassment", "inappropriate", "other"}

// ReportsTable is the DynamoDB table name for user reports.
const ReportsTable = "Reports"
