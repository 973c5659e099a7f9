package booking

import (
	"context"
	"testing"
	"time"

	"joeyjob/models"
	"joeyjob/services/fieldservice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	engine       *DefaultBookingEngine
	bookings     *fakeBookingRepo
	assignments  *fakeAssignmentRepo
	fieldService *fakeFieldService
	enqueuer     *fakeEnqueuer
}

func configuredCreds() *models.IntegrationCredentials {
	return &models.IntegrationCredentials{
		OrganizationID: "org-1",
		Provider:       "simpro",
		BaseURL:        "https://example.simprosuite.com",
		BuildID:        "build-1",
		CompanyID:      "0",
		AccessToken:    "token",
	}
}

func submissionForm() *models.BookingForm {
	form := testForm()
	form.Active = true
	form.Timezone = "Australia/Brisbane"
	form.RootService = models.ServiceNode{
		ID:   "root",
		Name: "All services",
		Children: []models.ServiceNode{{
			ID:                "svc-1",
			Name:              "Leak repair",
			Description:       "Fix a leaking pipe",
			Duration:          60,
			Price:             120,
			BufferTime:        15,
			AssignedEmployees: []string{"e1", "e2"},
			DefaultEmployeeID: "e1",
		}},
	}
	return form
}

func newEngineFixture(policy string, creds *models.IntegrationCredentials) *engineFixture {
	bookings := newFakeBookingRepo()
	assignments := newFakeAssignmentRepo()
	fs := &fakeFieldService{configured: creds.Configured()}
	enqueuer := &fakeEnqueuer{}

	employees := &fakeEmployeeRepo{employees: []models.Employee{
		{ID: "emp-1", OrganizationID: "org-1", ExternalID: "e1", Name: "Alice", Enabled: true},
		{ID: "emp-2", OrganizationID: "org-1", ExternalID: "e2", Name: "Bob", Enabled: true},
	}}

	engine := NewDefaultBookingEngine(
		&fakeFormRepo{form: submissionForm()},
		employees,
		bookings,
		assignments,
		&fakeIntegrationRepo{creds: creds},
		func(c *models.IntegrationCredentials) fieldservice.Client { return fs },
		&SubmissionGuard{}, // nil client: guard disabled
		enqueuer,
		policy,
	)
	engine.now = func() time.Time { return fixedNow }

	return &engineFixture{
		engine:       engine,
		bookings:     bookings,
		assignments:  assignments,
		fieldService: fs,
		enqueuer:     enqueuer,
	}
}

func submission() *models.BookingSubmission {
	return &models.BookingSubmission{
		OrganizationID: "org-1",
		ServiceID:      "svc-1",
		Date:           "2025-09-17",
		Time:           "2:00 pm",
		Responses: map[string]interface{}{
			"q_contact": map[string]interface{}{
				"firstName": "Ada",
				"lastName":  "Lovelace",
				"email":     "ada@example.com",
			},
			"q_gate": "1234",
		},
		Source: "form",
	}
}

func TestSubmitBookingHappyPath(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, configuredCreds())

	result, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.EmployeeAssigned)
	assert.Equal(t, "e1", result.EmployeeExternalID)
	assert.Equal(t, "job-1", result.ExternalJobID)
	require.Len(t, result.ConfirmationCode, 8)

	// The stored booking confirmed with the employee denormalized onto it.
	stored, err := fx.bookings.GetByID(context.Background(), result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, "e1", stored.EmployeeExternalID)
	assert.Equal(t, time.Date(2025, 9, 17, 4, 0, 0, 0, time.UTC), stored.BookingStartAt)
	assert.Equal(t, "Leak repair", stored.ServiceName)
	assert.Equal(t, "ada@example.com", stored.Customer.Email)

	// Assignment links the booking to every external sub-resource.
	assignment, err := fx.assignments.GetByBookingID(context.Background(), result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, assignment.SyncStatus)
	assert.Equal(t, "job-1", assignment.ExternalJobID)

	// The external job carried the resolved notes and the local schedule block.
	require.Len(t, fx.fieldService.createCalls, 1)
	call := fx.fieldService.createCalls[0]
	assert.Equal(t, "e1", call.EmployeeExternalID)
	assert.Contains(t, call.Notes, "Gate access code: 1234")
	require.Len(t, call.Blocks, 1)
	assert.Equal(t, "2025-09-17", call.Blocks[0].Date)
	assert.Equal(t, "14:00", call.Blocks[0].StartTime)
	assert.Equal(t, "15:00", call.Blocks[0].EndTime)
}

func TestSubmitBookingDefaultBusyFallsBack(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, configuredCreds())
	fx.bookings.Create(context.Background(), busyBooking("bk-busy", "e1"))

	result, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.NoError(t, err)
	assert.Equal(t, "e2", result.EmployeeExternalID)
}

func TestSubmitBookingRollbackOnAuthFailure(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, configuredCreds())
	fx.fieldService.createErr = &fieldservice.APIError{Kind: fieldservice.KindAuth, StatusCode: 401, Message: "expired"}

	_, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.Error(t, err)
	assert.Equal(t, KindExternalAuth, KindOf(err))

	// The pending row must not survive the failed external commit.
	assert.Empty(t, fx.bookings.bookings)
	assert.Empty(t, fx.assignments.assignments)
}

func TestSubmitBookingRollbackOnValidationFailure(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, configuredCreds())
	fx.fieldService.createErr = &fieldservice.APIError{Kind: fieldservice.KindValidation, StatusCode: 422, Message: "bad payload"}

	_, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.Error(t, err)
	assert.Equal(t, KindExternalValidation, KindOf(err))
	assert.Empty(t, fx.bookings.bookings)
}

func TestSubmitBookingDegradeKeepsPending(t *testing.T) {
	fx := newEngineFixture(PolicyDegrade, configuredCreds())
	fx.fieldService.createErr = &fieldservice.APIError{Kind: fieldservice.KindUnavailable, StatusCode: 503, Message: "down"}

	result, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.False(t, result.EmployeeAssigned)
	assert.Equal(t, "e1", result.EmployeeExternalID)

	stored, err := fx.bookings.GetByID(context.Background(), result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
	assert.Equal(t, "e1", stored.EmployeeExternalID)

	assignment, err := fx.assignments.GetByBookingID(context.Background(), result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusFailed, assignment.SyncStatus)
	assert.NotEmpty(t, assignment.SyncError)

	// A retry was scheduled for this booking.
	assert.Equal(t, []string{result.Booking.ID}, fx.enqueuer.calls)
}

func TestSubmitBookingUnconfiguredRollbackPolicy(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, nil)

	_, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.Error(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
	// Refused before anything was persisted.
	assert.Empty(t, fx.bookings.bookings)
}

func TestSubmitBookingUnconfiguredDegradeCommitsLocally(t *testing.T) {
	fx := newEngineFixture(PolicyDegrade, nil)

	result, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.EmployeeAssigned)
	assert.Empty(t, result.ExternalJobID)

	stored, err := fx.bookings.GetByID(context.Background(), result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)

	assignment, err := fx.assignments.GetByBookingID(context.Background(), result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusPending, assignment.SyncStatus)
	assert.Empty(t, assignment.ExternalJobID)

	// No external call was attempted.
	assert.Empty(t, fx.fieldService.createCalls)
}

func TestSubmitBookingUnknownService(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, configuredCreds())
	sub := submission()
	sub.ServiceID = "missing"

	_, err := fx.engine.SubmitBooking(context.Background(), sub)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Empty(t, fx.bookings.bookings)
}

func TestSubmitBookingInvalidTime(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, configuredCreds())
	sub := submission()
	sub.Time = "25:00"

	_, err := fx.engine.SubmitBooking(context.Background(), sub)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Empty(t, fx.bookings.bookings)
}

func TestSubmitBookingNoEligibleEmployees(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, configuredCreds())
	// Disable the whole roster: the pool empties and the submission fails
	// before any availability check, leaving no orphaned row behind.
	fx.engine.Employees = &fakeEmployeeRepo{employees: []models.Employee{
		{ID: "emp-1", OrganizationID: "org-1", ExternalID: "e1", Enabled: false},
		{ID: "emp-2", OrganizationID: "org-1", ExternalID: "e2", Enabled: false},
	}}

	_, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Contains(t, err.Error(), "No active employees are assigned")
	assert.Empty(t, fx.bookings.bookings)
}

func TestCheckAvailabilityDryRun(t *testing.T) {
	fx := newEngineFixture(PolicyRollback, configuredCreds())

	result, err := fx.engine.CheckAvailability(context.Background(), submission())
	require.NoError(t, err)
	assert.Equal(t, "e1", result.SelectedEmployee)
	assert.ElementsMatch(t, []string{"e1", "e2"}, result.AvailableEmployees)

	// Dry run: nothing persisted, nothing created externally.
	assert.Empty(t, fx.bookings.bookings)
	assert.Empty(t, fx.fieldService.createCalls)
}
