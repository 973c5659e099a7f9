package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	integrationRepo "joeyjob/database/repository/integration"
	"joeyjob/models"
	"joeyjob/services/fieldservice"
	"joeyjob/utils"

	"go.uber.org/zap"
)

// RetrySync re-attempts the external commit for a degraded booking. Called by
// the sync worker; returning an error makes the queue retry with backoff.
func (be *DefaultBookingEngine) RetrySync(ctx context.Context, bookingID string) error {
	logger := utils.GetLogger()

	bk, err := be.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		// The booking may have been rolled back or cancelled since the task
		// was enqueued; nothing left to sync.
		logger.Warn("Sync retry for missing booking", zap.String("bookingID", bookingID), zap.Error(err))
		return nil
	}
	if bk.Status != models.BookingStatusPending {
		return nil
	}

	assignment, err := be.Assignments.GetByBookingID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("loading assignment for booking %s: %w", bookingID, err)
	}
	if assignment.SyncStatus == models.SyncStatusSynced {
		return nil
	}

	creds, err := be.Integrations.GetCredentials(ctx, bk.OrganizationID)
	if err != nil {
		if errors.Is(err, integrationRepo.ErrNotConfigured) {
			return nil
		}
		return fmt.Errorf("loading credentials for org %s: %w", bk.OrganizationID, err)
	}
	if !creds.Configured() {
		return nil
	}

	window, err := DeriveSchedule(
		bk.BookingStartAt.In(mustLocation(bk.Timezone)).Format("2006-01-02"),
		bk.BookingStartAt.In(mustLocation(bk.Timezone)).Format("3:04 pm"),
		bk.ServiceDuration,
		bk.Timezone,
	)
	if err != nil {
		return fmt.Errorf("re-deriving schedule for booking %s: %w", bookingID, err)
	}

	fs := be.FieldService(creds)
	job, err := fs.CreateServiceJob(ctx, fieldservice.CreateJobRequest{
		Customer:           bk.Customer,
		JobName:            bk.ServiceName,
		JobDescription:     bk.ServiceDescription,
		Notes:              RenderNotes(bk.FormResponses),
		EmployeeExternalID: assignment.EmployeeExternalID,
		Blocks: []fieldservice.ScheduleBlock{{
			Date:      window.Date,
			StartTime: window.LocalStartTime,
			EndTime:   window.LocalEndTime,
		}},
		IdempotencyKey: bk.ID,
	})
	if err != nil {
		if updateErr := be.Assignments.UpdateSync(ctx, bookingID, models.SyncStatusFailed, err.Error()); updateErr != nil {
			logger.Warn("Failed to record sync failure", zap.String("bookingID", bookingID), zap.Error(updateErr))
		}
		return fmt.Errorf("external sync for booking %s: %w", bookingID, err)
	}

	if err := be.Assignments.SetExternalRefs(ctx, bookingID, job.JobID, job.CustomerID, job.ScheduleID, job.SiteID); err != nil {
		return fmt.Errorf("storing external refs for booking %s: %w", bookingID, err)
	}
	if err := be.Bookings.Confirm(ctx, bookingID, assignment.EmployeeExternalID); err != nil {
		return fmt.Errorf("confirming booking %s after sync: %w", bookingID, err)
	}

	logger.Info("Degraded booking synced to external system",
		zap.String("bookingID", bookingID),
		zap.String("jobID", job.JobID))
	return nil
}

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
