package handlers

import (
	assignmentRepo "joeyjob/database/repository/assignment"
	bookingRepo "joeyjob/database/repository/booking"
	employeeRepo "joeyjob/database/repository/employee"
	formRepo "joeyjob/database/repository/form"
	integrationRepo "joeyjob/database/repository/integration"
	"joeyjob/services/booking"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups the endpoint handlers and their dependencies.
type HandlerBundle struct {
	Engine       booking.BookingEngine
	Bookings     bookingRepo.BookingRepository
	Employees    employeeRepo.EmployeeRepository
	Forms        formRepo.FormRepository
	Assignments  assignmentRepo.AssignmentRepository
	Integrations integrationRepo.IntegrationRepository

	// Cache backs the short-lived roster cache; nil disables caching.
	Cache *redis.Client
}

// NewHandlerBundle wires a bundle from the booking engine and repositories.
func NewHandlerBundle(
	engine booking.BookingEngine,
	bookings bookingRepo.BookingRepository,
	employees employeeRepo.EmployeeRepository,
	forms formRepo.FormRepository,
	assignments assignmentRepo.AssignmentRepository,
	integrations integrationRepo.IntegrationRepository,
	cache *redis.Client,
) *HandlerBundle {
	return &HandlerBundle{
		Engine:       engine,
		Bookings:     bookings,
		Employees:    employees,
		Forms:        forms,
		Assignments:  assignments,
		Integrations: integrations,
		Cache:        cache,
	}
}
