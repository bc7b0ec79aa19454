package admin

import (
	"context"
	"fmt"
	"log/slog"

	"gymdesk/internal/common"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints access tokens for authenticated admins.
// The JWT implementation lives in infra/token.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Service handles admin authentication and account bootstrap.
type Service struct {
	store  Store
	tokens TokenIssuer
}

// NewService creates a new admin service.
func NewService(store Store, tokens TokenIssuer) *Service {
	return &Service{store: store, tokens: tokens}
}

// Login verifies credentials and returns a signed access token.
// Unknown usernames and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	a, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("fetching admin: %w", err)
	}
	if a == nil {
		return "", common.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", common.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.tokens.Issue(a.Username)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}
	return token, nil
}

// Bootstrap creates the initial admin account when none exists yet.
// Intended for automated deployments without an interactive shell; no-ops
// once any admin is present.
func (s *Service) Bootstrap(ctx context.Context, username, email, password string) error {
	if password == "" {
		slog.Warn("admin bootstrap skipped: no password configured")
		return nil
	}

	exists, err := s.store.Any(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing admins: %w", err)
	}
	if exists {
		slog.Info("admin account already exists, skipping bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	a := &Admin{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.Create(ctx, a); err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	slog.Info("admin account created", "username", username)
	return nil
}
