package bookingRepo

import (
	"context"
	"time"

	"joeyjob/models"
)

// BookingRepository persists bookings and answers the overlap queries the
// availability evaluator runs per candidate employee.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetByConfirmationCode(ctx context.Context, orgID, code string) (*models.Booking, error)
	ListByOrganization(ctx context.Context, orgID string, from, to time.Time) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, status string) error
	// Confirm marks the booking confirmed and denormalizes the chosen
	// employee onto it in one write.
	Confirm(ctx context.Context, bookingID, employeeExternalID string) error
	// SetEmployee records the chosen employee while the booking stays
	// pending (degraded mode, external sync still outstanding).
	SetEmployee(ctx context.Context, bookingID, employeeExternalID string) error
	Delete(ctx context.Context, bookingID string) error
	// FindOverlapping returns committed (pending or confirmed) bookings
	// assigned to the employee whose window intersects [from, to).
	FindOverlapping(ctx context.Context, orgID, employeeExternalID string, from, to time.Time) ([]models.Booking, error)
}
