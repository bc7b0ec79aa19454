package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymdesk/internal/config"
	"gymdesk/internal/domain/admin"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/notification"
	"gymdesk/internal/infra/cache"
	"gymdesk/internal/infra/provider"
	"gymdesk/internal/infra/store"
	"gymdesk/internal/infra/token"
	"gymdesk/internal/router"
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

	slog.Info("configuration loaded", "port", cfg.Server.Port, "mode", cfg.Server.Mode)

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
	adminStore := store.NewAdmins(sbClient)
	slog.Info("supabase stores initialized")

	// Token manager
	tokens := token.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)

	// Admin service + initial account bootstrap
	adminService := admin.NewService(adminStore, tokens)
	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := adminService.Bootstrap(bootstrapCtx, cfg.Auth.AdminUsername, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		slog.Error("admin bootstrap failed", "error", err)
	}
	bootstrapCancel()

	// Notification provider (lazy, resolved from config)
	providers := provider.NewResolver(cfg.Notifications.Provider)

	// Notification service
	gymName := cfg.Gym.Name
	notifier := notification.NewService(providers, auditStore, &notification.Renderer{
		GymName: func() string { return gymName },
	})

	// Dashboard cache
	dashCache := cache.NewDashboardCache(
		cfg.Redis.Address,
		cfg.Redis.Password,
		cfg.Redis.DB,
		time.Duration(cfg.Cache.DashboardTTLSec)*time.Second,
	)
	defer dashCache.Close()
	slog.Info("dashboard cache initialized", "redis", cfg.Redis.Address)

	// Member service
	memberService := member.NewService(memberStore, notifier, dashCache)

	// Handlers
	adminHandler := admin.NewHandler(adminService)
	memberHandler := member.NewHandler(memberService)

	// Router
	r := router.New(cfg, tokens, adminHandler, memberHandler)

	// ==========================================
	// HTTP Server with Graceful Shutdown
	// ==========================================

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Give outstanding requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}
