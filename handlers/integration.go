package handlers

import (
	"errors"
	"net/http"
	"time"

	integrationRepo "joeyjob/database/repository/integration"
	"joeyjob/models"
	"joeyjob/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetIntegrationHandler returns the organization's field-service connection
// state. The access token itself is never serialized.
func (hb *HandlerBundle) GetIntegrationHandler(c *gin.Context) {
	orgID := c.GetString("orgID")

	creds, err := hb.Integrations.GetCredentials(c.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, integrationRepo.ErrNotConfigured) {
			c.JSON(http.StatusOK, gin.H{"configured": false})
			return
		}
		utils.GetLogger().Error("Failed to load integration", zap.String("orgID", orgID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load integration settings", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": creds.Configured(), "integration": creds})
}

// SaveIntegrationHandler connects or reconnects the organization to its
// field-service system.
func (hb *HandlerBundle) SaveIntegrationHandler(c *gin.Context) {
	orgID := c.GetString("orgID")

	var input struct {
		Provider       string    `json:"provider" binding:"required"`
		BaseURL        string    `json:"baseUrl" binding:"required"`
		BuildID        string    `json:"buildId" binding:"required"`
		CompanyID      string    `json:"companyId"`
		AccessToken    string    `json:"accessToken" binding:"required"`
		TokenExpiresAt time.Time `json:"tokenExpiresAt"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	creds := &models.IntegrationCredentials{
		OrganizationID: orgID,
		Provider:       input.Provider,
		BaseURL:        input.BaseURL,
		BuildID:        input.BuildID,
		CompanyID:      input.CompanyID,
		AccessToken:    input.AccessToken,
		TokenExpiresAt: input.TokenExpiresAt,
	}
	if err := hb.Integrations.SaveCredentials(c.Request.Context(), creds); err != nil {
		utils.GetLogger().Error("Failed to save integration", zap.String("orgID", orgID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save integration settings", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": creds.Configured()})
}

// RefreshIntegrationTokenHandler stores a refreshed access token for an
// already-connected organization.
func (hb *HandlerBundle) RefreshIntegrationTokenHandler(c *gin.Context) {
	orgID := c.GetString("orgID")

	var input struct {
		AccessToken    string    `json:"accessToken" binding:"required"`
		TokenExpiresAt time.Time `json:"tokenExpiresAt"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	err := hb.Integrations.UpdateAccessToken(c.Request.Context(), orgID, input.AccessToken, input.TokenExpiresAt)
	if err != nil {
		if errors.Is(err, integrationRepo.ErrNotConfigured) {
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "integration is not connected"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to refresh token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
