package handlers

import (
	"net/http"

	"joeyjob/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListFailedSyncsHandler returns the organization's assignments whose external
// sync failed. Ops surface for degraded bookings that are stuck pending.
func (hb *HandlerBundle) ListFailedSyncsHandler(c *gin.Context) {
	orgID := c.GetString("orgID")

	failed, err := hb.Assignments.ListFailed(c.Request.Context(), orgID)
	if err != nil {
		utils.GetLogger().Error("Failed to list failed syncs", zap.String("orgID", orgID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list sync failures", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": failed})
}
