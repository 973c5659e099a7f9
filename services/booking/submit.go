package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	formRepo "joeyjob/database/repository/form"
	integrationRepo "joeyjob/database/repository/integration"
	"joeyjob/models"
	"joeyjob/services/fieldservice"
	"joeyjob/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitBooking runs the full commit workflow for one submission:
// validate, derive schedule, persist pending, resolve employees, select,
// external commit, link and confirm. A failure after the local row exists is
// handled per the engine's failure policy: rollback deletes the row and
// re-raises a categorized error; degrade keeps the booking pending, records
// the failed sync and schedules a retry.
func (be *DefaultBookingEngine) SubmitBooking(ctx context.Context, sub *models.BookingSubmission) (*models.SubmissionResult, error) {
	logger := utils.GetLogger()

	// Step 1: Validate — active form and service node.
	form, err := be.Forms.GetActiveForm(ctx, sub.OrganizationID)
	if err != nil {
		if errors.Is(err, formRepo.ErrNoActiveForm) {
			return nil, NewError(KindNotFound, "This organization has no active booking form.", err)
		}
		return nil, NewError(KindInternal, "Could not load the booking form.", err)
	}
	node := FindServiceNode(&form.RootService, sub.ServiceID)
	if node == nil {
		return nil, NewError(KindNotFound, "The requested service was not found.", nil)
	}

	// Resolve integration state up front so a rollback-policy engine can
	// refuse an unconfigured organization before anything is persisted.
	creds, err := be.Integrations.GetCredentials(ctx, sub.OrganizationID)
	if err != nil && !errors.Is(err, integrationRepo.ErrNotConfigured) {
		return nil, NewError(KindInternal, "Could not load integration settings.", err)
	}
	configured := creds.Configured()
	if !configured && be.FailurePolicy == PolicyRollback {
		return nil, NewError(KindConfig, "This organization is not connected to a field-service system.", nil)
	}

	// Step 2: Derive schedule.
	window, err := DeriveSchedule(sub.Date, sub.Time, node.Duration, form.Timezone)
	if err != nil {
		return nil, NewError(KindInvalidState, "The requested date or time is invalid.", err)
	}

	customer := ExtractCustomer(form, sub.Responses)
	responses := ResolveResponses(form, sub.Responses)

	// Claim the idempotency guard before touching any store. A duplicate
	// submission is answered with the booking the first attempt produced.
	key := sub.IdempotencyKey
	if key == "" {
		key = DeriveKey(sub, customer.Email)
	}
	first, priorBookingID, err := be.Guard.Claim(ctx, key)
	if err != nil {
		return nil, NewError(KindInternal, "Could not process the submission. Please try again.", err)
	}
	if !first {
		if priorBookingID == "" {
			return nil, NewError(KindInvalidState, "This booking is already being processed.", nil)
		}
		return be.replaySubmission(ctx, priorBookingID)
	}

	// Step 3: Persist booking as pending before any external call.
	now := be.now().UTC()
	bk := &models.Booking{
		ID:                 uuid.New().String(),
		OrganizationID:     sub.OrganizationID,
		ServiceID:          node.ID,
		ServiceName:        node.Name,
		ServiceDescription: node.Description,
		ServiceDuration:    node.Duration,
		ServicePrice:       node.Price,
		Customer:           customer,
		BookingStartAt:     window.StartUTC,
		BookingEndAt:       window.EndUTC,
		Timezone:           form.Timezone,
		FormResponses:      responses,
		Status:             models.BookingStatusPending,
		ConfirmationCode:   newConfirmationCode(),
		Source:             sub.Source,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := be.Bookings.Create(ctx, bk); err != nil {
		be.Guard.Release(ctx, key)
		return nil, NewError(KindInternal, "Could not save the booking.", err)
	}

	// Steps 4–5: Resolve employees and select. These failures remove the
	// just-inserted row so a rejected submission never leaves a pending orphan.
	selection, selErr := be.selectForService(ctx, sub.OrganizationID, node, window.StartUTC, form.Timezone, creds, configured)
	if selErr != nil {
		be.compensate(ctx, bk.ID, key)
		return nil, selErr
	}

	logger.Info("Employee selected for booking",
		zap.String("bookingID", bk.ID),
		zap.String("employeeID", selection.SelectedEmployee),
		zap.Int("availableCount", len(selection.AvailableEmployees)))

	// Degraded local-only mode: organization never connected an external
	// system, so the booking confirms without external references.
	if !configured {
		return be.commitLocalOnly(ctx, bk, selection.SelectedEmployee, key)
	}

	// Step 6: External commit.
	fs := be.FieldService(creds)
	jobReq := fieldservice.CreateJobRequest{
		Customer:           customer,
		JobName:            node.Name,
		JobDescription:     node.Description,
		Notes:              RenderNotes(responses),
		EmployeeExternalID: selection.SelectedEmployee,
		Blocks: []fieldservice.ScheduleBlock{{
			Date:      window.Date,
			StartTime: window.LocalStartTime,
			EndTime:   window.LocalEndTime,
		}},
		IdempotencyKey: key,
	}
	job, jobErr := fs.CreateServiceJob(ctx, jobReq)
	if jobErr != nil {
		return be.handleExternalFailure(ctx, bk, selection.SelectedEmployee, key, jobErr)
	}

	// Step 7: Link and confirm.
	assignment := &models.Assignment{
		ID:                 uuid.New().String(),
		BookingID:          bk.ID,
		OrganizationID:     bk.OrganizationID,
		EmployeeExternalID: selection.SelectedEmployee,
		ExternalJobID:      job.JobID,
		ExternalCustomerID: job.CustomerID,
		ExternalScheduleID: job.ScheduleID,
		ExternalSiteID:     job.SiteID,
		SyncStatus:         models.SyncStatusSynced,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := be.Assignments.Create(ctx, assignment); err != nil {
		be.compensate(ctx, bk.ID, key)
		return nil, NewError(KindInternal, "Could not record the booking assignment.", err)
	}
	if err := be.Bookings.Confirm(ctx, bk.ID, selection.SelectedEmployee); err != nil {
		be.compensate(ctx, bk.ID, key)
		return nil, NewError(KindInternal, "Could not confirm the booking.", err)
	}
	bk.Status = models.BookingStatusConfirmed
	bk.EmployeeExternalID = selection.SelectedEmployee

	if err := be.Guard.Commit(ctx, key, bk.ID); err != nil {
		logger.Warn("Failed to record submission guard", zap.String("bookingID", bk.ID), zap.Error(err))
	}

	return &models.SubmissionResult{
		Success:            true,
		Booking:            bk,
		EmployeeAssigned:   true,
		EmployeeExternalID: selection.SelectedEmployee,
		ExternalJobID:      job.JobID,
		ExternalCustomerID: job.CustomerID,
		ExternalScheduleID: job.ScheduleID,
		ConfirmationCode:   bk.ConfirmationCode,
	}, nil
}

// CheckAvailability runs validation and selection without persisting
// anything, returning the available employee set for the requested slot.
func (be *DefaultBookingEngine) CheckAvailability(ctx context.Context, sub *models.BookingSubmission) (*models.SelectionResult, error) {
	form, err := be.Forms.GetActiveForm(ctx, sub.OrganizationID)
	if err != nil {
		if errors.Is(err, formRepo.ErrNoActiveForm) {
			return nil, NewError(KindNotFound, "This organization has no active booking form.", err)
		}
		return nil, NewError(KindInternal, "Could not load the booking form.", err)
	}
	node := FindServiceNode(&form.RootService, sub.ServiceID)
	if node == nil {
		return nil, NewError(KindNotFound, "The requested service was not found.", nil)
	}

	creds, err := be.Integrations.GetCredentials(ctx, sub.OrganizationID)
	if err != nil && !errors.Is(err, integrationRepo.ErrNotConfigured) {
		return nil, NewError(KindInternal, "Could not load integration settings.", err)
	}

	window, err := DeriveSchedule(sub.Date, sub.Time, node.Duration, form.Timezone)
	if err != nil {
		return nil, NewError(KindInvalidState, "The requested date or time is invalid.", err)
	}

	return be.selectForService(ctx, sub.OrganizationID, node, window.StartUTC, form.Timezone, creds, creds.Configured())
}

// selectForService loads the enabled roster for a service node and runs the
// selection orchestrator against it.
func (be *DefaultBookingEngine) selectForService(
	ctx context.Context,
	orgID string,
	node *models.ServiceNode,
	startUTC time.Time,
	timezone string,
	creds *models.IntegrationCredentials,
	configured bool,
) (*models.SelectionResult, error) {
	// Step 4: Resolve employees.
	enabled, err := be.Employees.GetEnabledByExternalIDs(ctx, orgID, node.AssignedEmployees)
	if err != nil {
		return nil, NewError(KindInternal, "Could not load the employee roster.", err)
	}
	if len(enabled) == 0 {
		return nil, NewError(KindInvalidState, "No active employees are assigned to this service.", nil)
	}

	candidateIDs := make([]string, 0, len(enabled))
	for _, e := range enabled {
		candidateIDs = append(candidateIDs, e.ExternalID)
	}

	var fs fieldservice.Client
	if configured {
		fs = be.FieldService(creds)
	}
	evaluator := NewAvailabilityEvaluator(be.Bookings, fs)
	evaluator.now = be.now
	orchestrator := &SelectionOrchestrator{Evaluator: evaluator}

	// Step 5: Select.
	return orchestrator.SelectEmployee(ctx, SelectionRequest{
		OrganizationID:    orgID,
		CandidateIDs:      candidateIDs,
		DefaultEmployeeID: node.DefaultEmployeeID,
		Start:             startUTC,
		Policy:            node.Policy(),
		Timezone:          timezone,
	})
}

// handleExternalFailure applies the failure policy after the external commit
// threw: rollback deletes the local row and re-raises a categorized error;
// degrade keeps the booking pending with a failed-sync assignment and
// schedules a retry.
func (be *DefaultBookingEngine) handleExternalFailure(
	ctx context.Context,
	bk *models.Booking,
	employeeID string,
	key string,
	jobErr error,
) (*models.SubmissionResult, error) {
	logger := utils.GetLogger()
	logger.Error("External job creation failed",
		zap.String("bookingID", bk.ID),
		zap.Error(jobErr))

	if be.FailurePolicy == PolicyRollback {
		// Step 8: Compensate — the pending row must not outlive the failure.
		be.compensate(ctx, bk.ID, key)
		switch {
		case fieldservice.IsAuth(jobErr):
			return nil, NewError(KindExternalAuth, "The field-service connection was rejected. Reconnect the integration.", jobErr)
		case fieldservice.IsValidation(jobErr):
			return nil, NewError(KindExternalValidation, "The field-service system rejected the booking details.", jobErr)
		default:
			return nil, NewError(KindInternal, "The booking could not be created in the field-service system.", jobErr)
		}
	}

	// Degrade: keep the booking pending, remember the failure, retry later.
	now := be.now().UTC()
	assignment := &models.Assignment{
		ID:                 uuid.New().String(),
		BookingID:          bk.ID,
		OrganizationID:     bk.OrganizationID,
		EmployeeExternalID: employeeID,
		SyncStatus:         models.SyncStatusFailed,
		SyncError:          jobErr.Error(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := be.Assignments.Create(ctx, assignment); err != nil {
		be.compensate(ctx, bk.ID, key)
		return nil, NewError(KindInternal, "Could not record the booking assignment.", err)
	}
	if err := be.Bookings.SetEmployee(ctx, bk.ID, employeeID); err != nil {
		logger.Warn("Failed to record employee on degraded booking", zap.String("bookingID", bk.ID), zap.Error(err))
	}
	bk.EmployeeExternalID = employeeID

	if be.Tasks != nil {
		if err := be.Tasks.EnqueueSyncRetry(ctx, bk.ID, 5*time.Minute); err != nil {
			logger.Warn("Failed to enqueue sync retry", zap.String("bookingID", bk.ID), zap.Error(err))
		}
	}
	if err := be.Guard.Commit(ctx, key, bk.ID); err != nil {
		logger.Warn("Failed to record submission guard", zap.String("bookingID", bk.ID), zap.Error(err))
	}

	return &models.SubmissionResult{
		Success:            true,
		Booking:            bk,
		EmployeeAssigned:   false,
		EmployeeExternalID: employeeID,
		ConfirmationCode:   bk.ConfirmationCode,
	}, nil
}

// commitLocalOnly confirms a booking for an organization with no external
// integration. The assignment exists without external references; this is
// the one allowed exception to the confirmed-implies-job-id invariant.
func (be *DefaultBookingEngine) commitLocalOnly(ctx context.Context, bk *models.Booking, employeeID, key string) (*models.SubmissionResult, error) {
	now := be.now().UTC()
	assignment := &models.Assignment{
		ID:                 uuid.New().String(),
		BookingID:          bk.ID,
		OrganizationID:     bk.OrganizationID,
		EmployeeExternalID: employeeID,
		SyncStatus:         models.SyncStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := be.Assignments.Create(ctx, assignment); err != nil {
		be.compensate(ctx, bk.ID, key)
		return nil, NewError(KindInternal, "Could not record the booking assignment.", err)
	}
	if err := be.Bookings.Confirm(ctx, bk.ID, employeeID); err != nil {
		be.compensate(ctx, bk.ID, key)
		return nil, NewError(KindInternal, "Could not confirm the booking.", err)
	}
	bk.Status = models.BookingStatusConfirmed
	bk.EmployeeExternalID = employeeID

	if err := be.Guard.Commit(ctx, key, bk.ID); err != nil {
		utils.GetLogger().Warn("Failed to record submission guard", zap.String("bookingID", bk.ID), zap.Error(err))
	}

	return &models.SubmissionResult{
		Success:            true,
		Booking:            bk,
		EmployeeAssigned:   true,
		EmployeeExternalID: employeeID,
		ConfirmationCode:   bk.ConfirmationCode,
	}, nil
}

// replaySubmission answers a duplicate submission with the outcome the first
// attempt produced.
func (be *DefaultBookingEngine) replaySubmission(ctx context.Context, bookingID string) (*models.SubmissionResult, error) {
	bk, err := be.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, NewError(KindInternal, "Could not load the existing booking for this submission.", err)
	}
	result := &models.SubmissionResult{
		Success:            true,
		Booking:            bk,
		EmployeeAssigned:   bk.Status == models.BookingStatusConfirmed,
		EmployeeExternalID: bk.EmployeeExternalID,
		ConfirmationCode:   bk.ConfirmationCode,
	}
	if assignment, err := be.Assignments.GetByBookingID(ctx, bookingID); err == nil {
		result.ExternalJobID = assignment.ExternalJobID
		result.ExternalCustomerID = assignment.ExternalCustomerID
		result.ExternalScheduleID = assignment.ExternalScheduleID
	}
	return result, nil
}

// compensate removes the pending row and frees the guard after a failed
// attempt, so the customer can resubmit once the problem is fixed.
func (be *DefaultBookingEngine) compensate(ctx context.Context, bookingID, key string) {
	if err := be.Bookings.Delete(ctx, bookingID); err != nil {
		utils.GetLogger().Error("Compensating delete failed; pending booking may be orphaned",
			zap.String("bookingID", bookingID),
			zap.Error(err))
	}
	be.Guard.Release(ctx, key)
}

func newConfirmationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
}
