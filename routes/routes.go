package routes

import (
	"net/http"
	"time"

	"joeyjob/handlers"
	"joeyjob/middleware"
	"joeyjob/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine. Submit,
// availability and code lookup are public (they back the embedded booking
// widget); everything else is scoped to the caller's organization token.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.SubmitBookingHandler)
		api.GET("/availability", hb.CheckAvailabilityHandler)
		api.GET("/code/:code", hb.GetBookingByCodeHandler)

		protected := api.Group("")
		protected.Use(middleware.OrgAuthMiddleware())
		protected.GET("", hb.ListBookingsHandler)
		protected.GET("/:id", hb.GetBookingByIDHandler)
		protected.PATCH("/:id/status", hb.UpdateBookingStatusHandler)
	}
}

// RegisterEmployeeRoutes sets up the roster management endpoints.
func RegisterEmployeeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/employees")
	{
		api.Use(middleware.OrgAuthMiddleware())
		api.GET("", hb.ListEmployeesHandler)
		api.PUT("", hb.UpsertEmployeeHandler)
		api.PATCH("/:externalId/enabled", hb.SetEmployeeEnabledHandler)
	}
}

// RegisterAssignmentRoutes sets up the sync-monitoring endpoints.
func RegisterAssignmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assignments")
	{
		api.Use(middleware.OrgAuthMiddleware())
		api.GET("/failed", hb.ListFailedSyncsHandler)
	}
}

// RegisterIntegrationRoutes sets up the field-service connection endpoints.
func RegisterIntegrationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/integrations")
	{
		api.Use(middleware.OrgAuthMiddleware())
		api.GET("", hb.GetIntegrationHandler)
		api.PUT("", hb.SaveIntegrationHandler)
		api.PATCH("/token", hb.RefreshIntegrationTokenHandler)
	}
}

// RegisterFormRoutes sets up the public form endpoints.
func RegisterFormRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/forms")
	{
		api.GET("/active", hb.GetActiveFormHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm JoeyJob",
			"deps":    utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterBookingRoutes(r, hb)
	RegisterEmployeeRoutes(r, hb)
	RegisterAssignmentRoutes(r, hb)
	RegisterIntegrationRoutes(r, hb)
	RegisterFormRoutes(r, hb)
	RegisterHealthRoute(r)
}
