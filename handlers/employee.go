package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"joeyjob/models"
	"joeyjob/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListEmployeesHandler returns the organization's employee roster. The roster
// changes rarely and is read on every booking page load, so it is cached for
// a few minutes.
func (hb *HandlerBundle) ListEmployeesHandler(c *gin.Context) {
	orgID := c.GetString("orgID")
	ctx := c.Request.Context()
	cacheKey := utils.RosterCachePrefix + orgID

	if hb.Cache != nil {
		if cached, err := hb.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var employees []models.Employee
			if err := json.Unmarshal([]byte(cached), &employees); err == nil {
				c.JSON(http.StatusOK, gin.H{"employees": employees})
				return
			}
		}
	}

	employees, err := hb.Employees.ListByOrganization(ctx, orgID)
	if err != nil {
		utils.GetLogger().Error("Failed to list employees", zap.String("orgID", orgID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}

	if hb.Cache != nil {
		if data, err := json.Marshal(employees); err == nil {
			hb.Cache.Set(ctx, cacheKey, data, utils.RosterCacheTTL)
		}
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// UpsertEmployeeHandler creates or updates a roster entry keyed by its
// external field-service id.
func (hb *HandlerBundle) UpsertEmployeeHandler(c *gin.Context) {
	orgID := c.GetString("orgID")

	var input struct {
		ExternalID string `json:"externalId" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email"`
		Enabled    *bool  `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}
	employee := &models.Employee{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ExternalID:     input.ExternalID,
		Name:           input.Name,
		Email:          input.Email,
		Enabled:        enabled,
		UpdatedAt:      time.Now().UTC(),
	}

	if err := hb.Employees.Upsert(c.Request.Context(), employee); err != nil {
		utils.GetLogger().Error("Failed to upsert employee",
			zap.String("orgID", orgID), zap.String("externalID", input.ExternalID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save employee"})
		return
	}

	hb.invalidateRoster(c, orgID)
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// SetEmployeeEnabledHandler toggles whether an employee can be assigned
// bookings. Disabled employees drop out of every candidate pool immediately.
func (hb *HandlerBundle) SetEmployeeEnabledHandler(c *gin.Context) {
	orgID := c.GetString("orgID")
	externalID := c.Param("externalId")

	var input struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Employees.SetEnabled(c.Request.Context(), orgID, externalID, *input.Enabled); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	hb.invalidateRoster(c, orgID)
	c.JSON(http.StatusOK, gin.H{"externalId": externalID, "enabled": *input.Enabled})
}

func (hb *HandlerBundle) invalidateRoster(c *gin.Context, orgID string) {
	if hb.Cache != nil {
		hb.Cache.Del(c.Request.Context(), utils.RosterCachePrefix+orgID)
	}
}
