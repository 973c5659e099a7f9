package booking

import (
	"context"
	"testing"

	"joeyjob/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{models.BookingStatusPending, models.BookingStatusCancelled, true},
		{models.BookingStatusPending, models.BookingStatusCompleted, false},
		{models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{models.BookingStatusConfirmed, models.BookingStatusNoShow, true},
		{models.BookingStatusConfirmed, models.BookingStatusPending, false},
		{models.BookingStatusCompleted, models.BookingStatusCancelled, false},
		{models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
		{models.BookingStatusNoShow, models.BookingStatusConfirmed, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionStatus(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.Create(context.Background(), &models.Booking{
		ID:             "bk-1",
		OrganizationID: "org-1",
		Status:         models.BookingStatusConfirmed,
	})
	be := &DefaultBookingEngine{Bookings: repo}

	bk, err := be.TransitionStatus(context.Background(), "bk-1", models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, bk.Status)

	stored, err := repo.GetByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, stored.Status)
}

func TestTransitionStatusRejectsIllegalMove(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.Create(context.Background(), &models.Booking{
		ID:     "bk-1",
		Status: models.BookingStatusCompleted,
	})
	be := &DefaultBookingEngine{Bookings: repo}

	_, err := be.TransitionStatus(context.Background(), "bk-1", models.BookingStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))

	stored, err := repo.GetByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, stored.Status)
}

func TestTransitionStatusMissingBooking(t *testing.T) {
	be := &DefaultBookingEngine{Bookings: newFakeBookingRepo()}
	_, err := be.TransitionStatus(context.Background(), "ghost", models.BookingStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
