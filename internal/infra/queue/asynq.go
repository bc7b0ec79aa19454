package queue

import (
	"fmt"
	"time"

	"gymdesk/internal/domain/member"

	"github.com/hibiken/asynq"
)

// NewServer creates an asynq server connected to Redis for the reminder
// worker.
func NewServer(redisAddr, password string, db int, concurrency int) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"reminders": 10, // priority weight
				"default":   1,
			},
			RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
				// Exponential backoff: 30s, 60s, 120s, ...
				return time.Duration(30*(1<<uint(n-1))) * time.Second
			},
		},
	)
}

// NewScheduler creates an asynq scheduler that enqueues the periodic
// reminder sweep according to cronSpec.
func NewScheduler(redisAddr, password string, db int) *asynq.Scheduler {
	return asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		},
		&asynq.SchedulerOpts{},
	)
}

// RegisterReminderSweep schedules the recurring reminder sweep task.
func RegisterReminderSweep(scheduler *asynq.Scheduler, cronSpec string, maxRetry int) error {
	task, err := member.NewReminderSweepTask()
	if err != nil {
		return fmt.Errorf("creating sweep task: %w", err)
	}

	_, err = scheduler.Register(cronSpec, task,
		asynq.MaxRetry(maxRetry),
		asynq.Queue("reminders"),
	)
	if err != nil {
		return fmt.Errorf("registering sweep schedule: %w", err)
	}
	return nil
}
