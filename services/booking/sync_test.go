package booking

import (
	"context"
	"testing"

	"joeyjob/models"
	"joeyjob/services/fieldservice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func degradedFixture(t *testing.T) (*engineFixture, *models.Booking) {
	t.Helper()
	fx := newEngineFixture(PolicyDegrade, configuredCreds())
	fx.fieldService.createErr = &fieldservice.APIError{Kind: fieldservice.KindUnavailable, StatusCode: 503, Message: "down"}

	result, err := fx.engine.SubmitBooking(context.Background(), submission())
	require.NoError(t, err)
	require.False(t, result.EmployeeAssigned)

	// External system recovers.
	fx.fieldService.createErr = nil
	fx.fieldService.createCalls = nil
	return fx, result.Booking
}

func TestRetrySyncConfirmsDegradedBooking(t *testing.T) {
	fx, bk := degradedFixture(t)

	err := fx.engine.RetrySync(context.Background(), bk.ID)
	require.NoError(t, err)

	stored, err := fx.bookings.GetByID(context.Background(), bk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, "e1", stored.EmployeeExternalID)

	assignment, err := fx.assignments.GetByBookingID(context.Background(), bk.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, assignment.SyncStatus)
	assert.Equal(t, "job-1", assignment.ExternalJobID)
	assert.Empty(t, assignment.SyncError)

	// The retry re-derived the original local schedule block and keyed the
	// create on the booking id so a second delivery cannot double-book.
	require.Len(t, fx.fieldService.createCalls, 1)
	call := fx.fieldService.createCalls[0]
	assert.Equal(t, bk.ID, call.IdempotencyKey)
	require.Len(t, call.Blocks, 1)
	assert.Equal(t, "2025-09-17", call.Blocks[0].Date)
	assert.Equal(t, "14:00", call.Blocks[0].StartTime)
	assert.Equal(t, "15:00", call.Blocks[0].EndTime)
}

func TestRetrySyncRecordsRepeatedFailure(t *testing.T) {
	fx, bk := degradedFixture(t)
	fx.fieldService.createErr = &fieldservice.APIError{Kind: fieldservice.KindUnavailable, StatusCode: 503, Message: "still down"}

	err := fx.engine.RetrySync(context.Background(), bk.ID)
	require.Error(t, err) // the queue retries with backoff

	assignment, gErr := fx.assignments.GetByBookingID(context.Background(), bk.ID)
	require.NoError(t, gErr)
	assert.Equal(t, models.SyncStatusFailed, assignment.SyncStatus)
	assert.Contains(t, assignment.SyncError, "still down")

	stored, gErr := fx.bookings.GetByID(context.Background(), bk.ID)
	require.NoError(t, gErr)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
}

func TestRetrySyncSkipsMissingBooking(t *testing.T) {
	fx := newEngineFixture(PolicyDegrade, configuredCreds())
	assert.NoError(t, fx.engine.RetrySync(context.Background(), "ghost"))
}

func TestRetrySyncSkipsNonPendingBooking(t *testing.T) {
	fx, bk := degradedFixture(t)
	require.NoError(t, fx.bookings.UpdateStatus(context.Background(), bk.ID, models.BookingStatusCancelled))

	err := fx.engine.RetrySync(context.Background(), bk.ID)
	require.NoError(t, err)
	assert.Empty(t, fx.fieldService.createCalls)
}

func TestRetrySyncSkipsAlreadySynced(t *testing.T) {
	fx, bk := degradedFixture(t)
	require.NoError(t, fx.assignments.SetExternalRefs(context.Background(), bk.ID, "job-9", "c-9", "s-9", ""))

	err := fx.engine.RetrySync(context.Background(), bk.ID)
	require.NoError(t, err)
	assert.Empty(t, fx.fieldService.createCalls)
}

func TestRetrySyncSkipsWhenIntegrationRemoved(t *testing.T) {
	fx, bk := degradedFixture(t)
	fx.engine.Integrations = &fakeIntegrationRepo{creds: nil}

	err := fx.engine.RetrySync(context.Background(), bk.ID)
	require.NoError(t, err)
	assert.Empty(t, fx.fieldService.createCalls)

	stored, gErr := fx.bookings.GetByID(context.Background(), bk.ID)
	require.NoError(t, gErr)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
}
