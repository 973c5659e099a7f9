package handlers

import (
	"errors"
	"net/http"

	formRepo "joeyjob/database/repository/form"

	"github.com/gin-gonic/gin"
)

// GetActiveFormHandler returns the organization's active booking form,
// including its service tree. Public: it is what the embedded booking widget
// renders.
func (hb *HandlerBundle) GetActiveFormHandler(c *gin.Context) {
	orgID := c.Query("organizationId")
	if orgID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organizationId is required"})
		return
	}

	form, err := hb.Forms.GetActiveForm(c.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, formRepo.ErrNoActiveForm) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active booking form for this organization"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking form"})
		return
	}
	c.JSON(http.StatusOK, form)
}
