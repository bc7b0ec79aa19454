package admin

import (
	"context"
	"time"
)

// Admin is an administrator account that can log into the backend.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store defines the contract for persisting admin accounts.
// Implementations live in infra/store.
type Store interface {
	// GetByUsername retrieves an admin by username. Returns nil, nil when
	// not found.
	GetByUsername(ctx context.Context, username string) (*Admin, error)

	// Create inserts a new admin account.
	Create(ctx context.Context, a *Admin) error

	// Any reports whether at least one admin account exists.
	Any(ctx context.Context) (bool, error)
}
