package booking

import (
	"context"
	"fmt"

	"joeyjob/models"
)

// validTransitions is the booking lifecycle: pending bookings confirm or
// cancel; confirmed bookings complete, cancel or no-show. Completed,
// cancelled and no-show are terminal.
var validTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled, models.BookingStatusNoShow},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionStatus moves a booking through its lifecycle, rejecting illegal
// transitions with an invalid-state error.
func (be *DefaultBookingEngine) TransitionStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error) {
	bk, err := be.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, NewError(KindNotFound, "Booking not found.", err)
	}

	if !CanTransition(bk.Status, newStatus) {
		return nil, NewError(KindInvalidState,
			fmt.Sprintf("A %s booking cannot be marked %s.", bk.Status, newStatus), nil)
	}

	if err := be.Bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, NewError(KindInternal, "Could not update the booking.", err)
	}
	bk.Status = newStatus
	return bk, nil
}
