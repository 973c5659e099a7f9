package handlers

import (
	"errors"
	"net/http"

	"joeyjob/models"
	"joeyjob/services/booking"
	"joeyjob/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondBookingError translates a booking engine error into an HTTP response.
// Categorized errors carry a user-safe message; everything else gets a generic
// 500 and the cause stays in the logs.
func respondBookingError(c *gin.Context, err error) {
	var bErr *booking.Error
	if errors.As(err, &bErr) {
		c.JSON(bErr.HTTPStatus(), gin.H{"error": bErr.Message, "code": bErr.Kind})
		return
	}
	utils.GetLogger().Error("Unhandled booking error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
}

// SubmitBookingHandler accepts a public booking form submission and runs the
// full commit workflow.
func (hb *HandlerBundle) SubmitBookingHandler(c *gin.Context) {
	var sub models.BookingSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := hb.Engine.SubmitBooking(c.Request.Context(), &sub)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CheckAvailabilityHandler runs a dry selection for a slot without persisting
// anything. Used by the booking widget to grey out slots.
func (hb *HandlerBundle) CheckAvailabilityHandler(c *gin.Context) {
	sub := models.BookingSubmission{
		OrganizationID: c.Query("organizationId"),
		ServiceID:      c.Query("serviceId"),
		Date:           c.Query("date"),
		Time:           c.Query("time"),
	}
	if sub.OrganizationID == "" || sub.ServiceID == "" || sub.Date == "" || sub.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organizationId, serviceId, date and time are required"})
		return
	}

	result, err := hb.Engine.CheckAvailability(c.Request.Context(), &sub)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookingByIDHandler returns one booking within the caller's organization.
func (hb *HandlerBundle) GetBookingByIDHandler(c *gin.Context) {
	orgID := c.GetString("orgID")
	bookingID := c.Param("id")

	bk, err := hb.Bookings.GetByID(c.Request.Context(), bookingID)
	if err != nil || bk.OrganizationID != orgID {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// GetBookingByCodeHandler looks a booking up by its confirmation code. Public:
// it backs the customer-facing confirmation page.
func (hb *HandlerBundle) GetBookingByCodeHandler(c *gin.Context) {
	orgID := c.Query("organizationId")
	code := c.Param("code")
	if orgID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organizationId is required"})
		return
	}

	bk, err := hb.Bookings.GetByConfirmationCode(c.Request.Context(), orgID, code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, bk)
}

// ListBookingsHandler returns the organization's bookings starting inside
// [from, to). Both bounds arrive as RFC 3339 query params.
func (hb *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	orgID := c.GetString("orgID")

	from, to, err := parseTimeRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, err := hb.Bookings.ListByOrganization(c.Request.Context(), orgID, from, to)
	if err != nil {
		utils.GetLogger().Error("Failed to list bookings", zap.String("orgID", orgID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateBookingStatusHandler moves a booking through its lifecycle.
func (hb *HandlerBundle) UpdateBookingStatusHandler(c *gin.Context) {
	orgID := c.GetString("orgID")
	bookingID := c.Param("id")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	// The engine loads by id only; enforce org scoping here.
	bk, err := hb.Bookings.GetByID(c.Request.Context(), bookingID)
	if err != nil || bk.OrganizationID != orgID {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	updated, err := hb.Engine.TransitionStatus(c.Request.Context(), bookingID, input.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
