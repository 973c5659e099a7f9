// File: joeyjob/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"joeyjob/config"
	"joeyjob/cron"
	"joeyjob/database"
	assignmentRepo "joeyjob/database/repository/assignment"
	bookingRepo "joeyjob/database/repository/booking"
	employeeRepo "joeyjob/database/repository/employee"
	formRepo "joeyjob/database/repository/form"
	integrationRepo "joeyjob/database/repository/integration"
	"joeyjob/handlers"
	"joeyjob/models"
	"joeyjob/routes"
	"joeyjob/services/booking"
	"joeyjob/services/fieldservice"
	"joeyjob/services/tasks"
	"joeyjob/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	forms := formRepo.NewMongoFormRepo()
	employees := employeeRepo.NewMongoEmployeeRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	assignments := assignmentRepo.NewMongoAssignmentRepo()
	integrations := integrationRepo.NewMongoIntegrationRepo()

	// Per-organization field-service clients are built from stored credentials
	// at submission time.
	timeout := time.Duration(config.AppConfig.SimproTimeoutMs) * time.Millisecond
	factory := func(creds *models.IntegrationCredentials) fieldservice.Client {
		return fieldservice.NewSimproClient(creds, timeout)
	}

	guard := &booking.SubmissionGuard{Redis: utils.GetGuardClient()}
	enqueuer := &tasks.Enqueuer{Client: cron.NewSyncClient()}

	engine := booking.NewDefaultBookingEngine(
		forms,
		employees,
		bookings,
		assignments,
		integrations,
		factory,
		guard,
		enqueuer,
		config.AppConfig.BookingFailurePolicy,
	)

	// Background worker retries external syncs for degraded bookings.
	cron.InitSyncWorker(engine)

	handlerBundle := handlers.NewHandlerBundle(engine, bookings, employees, forms, assignments, integrations, utils.GetCacheClient())

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetGuardClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
