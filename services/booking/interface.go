package booking

import (
	"context"
	"time"

	assignmentRepo "joeyjob/database/repository/assignment"
	bookingRepo "joeyjob/database/repository/booking"
	employeeRepo "joeyjob/database/repository/employee"
	formRepo "joeyjob/database/repository/form"
	integrationRepo "joeyjob/database/repository/integration"
	"joeyjob/models"
	"joeyjob/services/fieldservice"
)

// Failure policies for the commit workflow. Rollback deletes the local row
// when the external commit fails; degrade keeps it pending and schedules a
// retry. One engine runs exactly one policy; the two are never mixed.
const (
	PolicyRollback = "rollback"
	PolicyDegrade  = "degrade"
)

// BookingEngine is the public surface of the booking subsystem.
type BookingEngine interface {
	SubmitBooking(ctx context.Context, sub *models.BookingSubmission) (*models.SubmissionResult, error)
	CheckAvailability(ctx context.Context, sub *models.BookingSubmission) (*models.SelectionResult, error)
	TransitionStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error)
	RetrySync(ctx context.Context, bookingID string) error
}

// TaskEnqueuer schedules a later external sync retry for a degraded booking.
type TaskEnqueuer interface {
	EnqueueSyncRetry(ctx context.Context, bookingID string, delay time.Duration) error
}

// FieldServiceFactory builds a per-organization client from stored
// credentials. nil credentials yield an unconfigured client.
type FieldServiceFactory func(creds *models.IntegrationCredentials) fieldservice.Client

// DefaultBookingEngine implements BookingEngine.
type DefaultBookingEngine struct {
	Forms        formRepo.FormRepository
	Employees    employeeRepo.EmployeeRepository
	Bookings     bookingRepo.BookingRepository
	Assignments  assignmentRepo.AssignmentRepository
	Integrations integrationRepo.IntegrationRepository
	FieldService FieldServiceFactory
	Guard        *SubmissionGuard
	Tasks        TaskEnqueuer

	// FailurePolicy is PolicyRollback or PolicyDegrade.
	FailurePolicy string

	now func() time.Time
}

// NewDefaultBookingEngine wires an engine with the given failure policy.
func NewDefaultBookingEngine(
	forms formRepo.FormRepository,
	employees employeeRepo.EmployeeRepository,
	bookings bookingRepo.BookingRepository,
	assignments assignmentRepo.AssignmentRepository,
	integrations integrationRepo.IntegrationRepository,
	factory FieldServiceFactory,
	guard *SubmissionGuard,
	tasks TaskEnqueuer,
	failurePolicy string,
) *DefaultBookingEngine {
	if failurePolicy != PolicyDegrade {
		failurePolicy = PolicyRollback
	}
	return &DefaultBookingEngine{
		Forms:         forms,
		Employees:     employees,
		Bookings:      bookings,
		Assignments:   assignments,
		Integrations:  integrations,
		FieldService:  factory,
		Guard:         guard,
		Tasks:         tasks,
		FailurePolicy: failurePolicy,
		now:           time.Now,
	}
}
