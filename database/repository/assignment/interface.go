package assignmentRepo

import (
	"context"

	"joeyjob/models"
)

// AssignmentRepository persists the booking-to-employee join records and
// their external sync state.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByBookingID(ctx context.Context, bookingID string) (*models.Assignment, error)
	UpdateSync(ctx context.Context, bookingID, syncStatus, syncError string) error
	SetExternalRefs(ctx context.Context, bookingID string, jobID, customerID, scheduleID, siteID string) error
	ListFailed(ctx context.Context, orgID string) ([]models.Assignment, error)
}
