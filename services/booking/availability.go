package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "joeyjob/database/repository/booking"
	"joeyjob/models"
	"joeyjob/services/fieldservice"
	"joeyjob/utils"

	"go.uber.org/zap"
)

// AvailabilityRequest is one slot check for one employee.
type AvailabilityRequest struct {
	OrganizationID     string
	EmployeeExternalID string
	Start              time.Time // UTC
	Policy             models.SchedulingPolicy
	Timezone           string
}

// AvailabilityEvaluator answers whether an employee can take an exact window.
// It holds no mutable state, so one instance is safe to use from many
// goroutines evaluating candidates for the same slot.
type AvailabilityEvaluator struct {
	Bookings bookingRepo.BookingRepository
	// FieldService may be nil or unconfigured; external schedules are then
	// skipped and only local bookings decide the answer.
	FieldService fieldservice.Client

	now func() time.Time
}

// NewAvailabilityEvaluator wires an evaluator over the local booking store
// and the optional external schedule source.
func NewAvailabilityEvaluator(bookings bookingRepo.BookingRepository, fs fieldservice.Client) *AvailabilityEvaluator {
	return &AvailabilityEvaluator{
		Bookings:     bookings,
		FieldService: fs,
		now:          time.Now,
	}
}

// IsAvailable reports whether the employee is free for the exact window
// [start, start+duration), honoring minimum notice and buffer time. If the
// external schedule source is reachable it is consulted too; if it errors,
// the error is surfaced rather than assuming "available".
func (ev *AvailabilityEvaluator) IsAvailable(ctx context.Context, req AvailabilityRequest) (bool, error) {
	now := ev.now().UTC()
	start := req.Start.UTC()
	end := start.Add(time.Duration(req.Policy.Duration) * time.Minute)

	// Minimum notice: the window must start at least MinimumNotice minutes
	// from now.
	if start.Before(now.Add(time.Duration(req.Policy.MinimumNotice) * time.Minute)) {
		return false, nil
	}

	buffer := time.Duration(req.Policy.BufferTime) * time.Minute
	windowStart := start.Add(-buffer)
	windowEnd := end.Add(buffer)

	overlapping, err := ev.Bookings.FindOverlapping(ctx, req.OrganizationID, req.EmployeeExternalID, windowStart, windowEnd)
	if err != nil {
		return false, fmt.Errorf("checking local bookings for employee %s: %w", req.EmployeeExternalID, err)
	}
	if len(overlapping) > 0 {
		return false, nil
	}

	if ev.FieldService == nil || !ev.FieldService.Configured() {
		return true, nil
	}

	// Fetch the employee's external blocks for the whole local day so one
	// call covers the buffered window.
	blocks, err := ev.FieldService.GetEmployeeSchedules(ctx, req.EmployeeExternalID, windowStart, windowEnd)
	if err != nil {
		// Fail closed: an unreachable schedule source must not read as free.
		return false, fmt.Errorf("fetching external schedules for employee %s: %w", req.EmployeeExternalID, err)
	}

	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return false, fmt.Errorf("unknown timezone %q: %w", req.Timezone, err)
	}
	for _, block := range blocks {
		blockStart, blockEnd, err := blockWindow(block, loc)
		if err != nil {
			utils.GetLogger().Warn("Skipping malformed external schedule block",
				zap.String("employeeID", req.EmployeeExternalID),
				zap.String("date", block.Date),
				zap.Error(err))
			continue
		}
		if blockStart.Before(windowEnd) && blockEnd.After(windowStart) {
			return false, nil
		}
	}

	return true, nil
}

// blockWindow converts one external {date, start, end} block into UTC
// instants, interpreting its times in the organization's timezone.
func blockWindow(block fieldservice.ScheduleBlock, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", block.Date+" "+block.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid block start: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", block.Date+" "+block.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid block end: %w", err)
	}
	// End at or before start means the block wraps past midnight.
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start.UTC(), end.UTC(), nil
}
