package fieldservice

import (
	"context"
	"time"

	"joeyjob/models"
)

// ScheduleBlock is one {date, start, end} block in the external system's
// 24-hour local time format.
type ScheduleBlock struct {
	Date      string `json:"date"`      // "2006-01-02"
	StartTime string `json:"startTime"` // "15:04", local
	EndTime   string `json:"endTime"`   // "15:04", local
}

// CreateJobRequest creates a customer, a job and its schedule in one logical
// operation against the external field-service system.
type CreateJobRequest struct {
	Customer           models.Customer `json:"customer"`
	JobName            string          `json:"jobName"`
	JobDescription     string          `json:"jobDescription,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	EmployeeExternalID string          `json:"employeeId"`
	Blocks             []ScheduleBlock `json:"blocks"`
	// IdempotencyKey is forwarded so a retried create does not produce a
	// second job when the system supports it.
	IdempotencyKey string `json:"-"`
}

// JobResult carries the identifiers of every sub-resource the create produced.
type JobResult struct {
	JobID      string `json:"jobId"`
	CustomerID string `json:"customerId"`
	ScheduleID string `json:"scheduleId"`
	SiteID     string `json:"siteId,omitempty"`
}

// Client is the booking engine's view of the external field-service system.
type Client interface {
	// Configured reports whether the organization's credentials are usable.
	Configured() bool
	// CreateServiceJob creates customer + job + schedule as one operation.
	CreateServiceJob(ctx context.Context, req CreateJobRequest) (*JobResult, error)
	// GetEmployeeSchedules returns the employee's committed blocks inside
	// [from, to). An error here must be surfaced, never treated as "free".
	GetEmployeeSchedules(ctx context.Context, employeeExternalID string, from, to time.Time) ([]ScheduleBlock, error)
}
