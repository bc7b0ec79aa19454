package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gymdesk/internal/config"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/notification"
	"gymdesk/internal/infra/provider"
	"gymdesk/internal/infra/queue"
	"gymdesk/internal/infra/store"

	"github.com/hibiken/asynq"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("worker configuration loaded")

	// ==========================================
	// Dependency Injection (Manual Wiring)
	// ==========================================

	// Supabase client and stores
	sbClient, err := store.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	if err != nil {
		slog.Error("failed to initialize supabase client", "error", err)
		os.Exit(1)
	}
	memberStore := store.NewMembers(sbClient)
	auditStore := store.NewMessageLogs(sbClient)
	slog.Info("supabase stores initialized")

	// Notification provider (lazy, resolved from config)
	providers := provider.NewResolver(cfg.Notifications.Provider)

	// Notification service
	gymName := cfg.Gym.Name
	notifier := notification.NewService(providers, auditStore, &notification.Renderer{
		GymName: func() string { return gymName },
	})

	// Reminder sweeper
	sweeper := member.NewSweeper(memberStore, notifier, member.SweeperConfig{
		WindowDays: cfg.Sweep.WindowDays,
	})

	// ==========================================
	// Asynq Server (task processing)
	// ==========================================

	asynqServer := queue.NewServer(
		cfg.Redis.Address,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Queue.Concurrency,
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(member.TaskTypeReminderSweep, func(ctx context.Context, task *asynq.Task) error {
		payload, err := member.ParseReminderSweepPayload(task.Payload())
		if err != nil {
			return err
		}
		slog.Info("reminder sweep starting", "scheduled_for", payload.ScheduledFor)
		return sweeper.Sweep(ctx)
	})

	// Start the asynq worker in a goroutine
	go func() {
		slog.Info("worker starting",
			"concurrency", cfg.Queue.Concurrency,
			"redis", cfg.Redis.Address,
		)
		if err := asynqServer.Run(mux); err != nil {
			slog.Error("worker failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// ==========================================
	// Sweep Scheduler
	// ==========================================

	scheduler := queue.NewScheduler(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err := queue.RegisterReminderSweep(scheduler, cfg.Sweep.CronSpec, cfg.Queue.MaxRetry); err != nil {
		slog.Error("failed to register sweep schedule", "error", err)
		os.Exit(1)
	}

	go func() {
		slog.Info("scheduler starting", "cron", cfg.Sweep.CronSpec)
		if err := scheduler.Run(); err != nil {
			slog.Error("scheduler failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// ==========================================
	// Graceful Shutdown
	// ==========================================

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down worker...")
	scheduler.Shutdown()
	asynqServer.Shutdown()
	slog.Info("worker exited gracefully")
}
