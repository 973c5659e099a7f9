package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeBookingSync = "booking:sync"

// SyncPayload identifies the degraded booking whose external commit should be
// re-attempted.
type SyncPayload struct {
	BookingID string `json:"bookingId"`
}

// NewSyncTask builds the asynq task for one booking sync retry.
func NewSyncTask(bookingID string, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(SyncPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingSync, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

// Enqueuer wraps the asynq client behind the booking engine's TaskEnqueuer
// interface.
type Enqueuer struct {
	Client *asynq.Client
}

// EnqueueSyncRetry schedules a sync retry for the booking after the delay.
func (e *Enqueuer) EnqueueSyncRetry(ctx context.Context, bookingID string, delay time.Duration) error {
	task, opts, err := NewSyncTask(bookingID, delay)
	if err != nil {
		return fmt.Errorf("building sync task: %w", err)
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueueing sync task for booking %s: %w", bookingID, err)
	}
	return nil
}
