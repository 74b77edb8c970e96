package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"kindred_server/models"

	"github.com/google/uuid"
)

type ReportService struct {
	Dynamo *DynamoService
}

// ReportUser records a report in "pending" status. Moderation review is
// outside this service.
func (s *ReportService) ReportUser(ctx context.Context, fromID, toID, reason, details string) (*models.Report, error) {
	if fromID == "" || toID == "" {
		return nil, errors.New("fromId and toId are required")
	}
	if !validReason(reason) {
		return nil, fmt.Errorf("invalid report reason %q", reason)
	}

	report := models.Report{
		ReportID:  uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		Reason:    reason,
		Details:   details,
		Status:    models.ReportStatusPending,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.Dynamo.PutItem(ctx, models.ReportsTable, report); err != nil {
		return nil, fmt.Errorf("failed to record report: %w", err)
	}

	log.Printf("User %s reported by %s for %s", toID, fromID, reason)
	return &report, nil
}

func validReason(reason string) bool {
	for _, r := range models.ReportReasons {
		if r == reason {
			return true
		}
	}
	return false
}
