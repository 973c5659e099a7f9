package formRepo

import (
	"context"

	"joeyjob/models"
)

// FormRepository reads organization booking-form configuration. The booking
// subsystem never writes forms; they are owned by the org admin surface.
type FormRepository interface {
	GetActiveForm(ctx context.Context, orgID string) (*models.BookingForm, error)
	GetByID(ctx context.Context, orgID, formID string) (*models.BookingForm, error)
}
