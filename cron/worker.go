package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"joeyjob/config"
	"joeyjob/services/booking"
	"joeyjob/services/tasks"

	"github.com/hibiken/asynq"
)

// NewSyncClient builds the asynq client the booking engine enqueues retry
// tasks with.
func NewSyncClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})
}

// InitSyncWorker runs the async worker in background.
func InitSyncWorker(engine booking.BookingEngine) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingSync, handleSyncTask(engine))

	// Start async worker with retry logic
	go func() {
		log.Println("[SyncWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SyncWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SyncWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSyncTask(engine booking.BookingEngine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.SyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SyncHandler] Invalid payload: %v", err)
			return err
		}

		log.Printf("[SyncHandler] Retrying external sync for booking %s", p.BookingID)
		if err := engine.RetrySync(ctx, p.BookingID); err != nil {
			log.Printf("[SyncHandler] Sync failed for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}
