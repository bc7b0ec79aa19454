package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gymdesk/internal/domain/admin"

	supa "github.com/supabase-community/supabase-go"
)

const adminsTable = "admin_users"

var _ admin.Store = (*Admins)(nil)

// Admins implements admin.Store using the Supabase Go SDK.
type Admins struct {
	client *supa.Client
}

// NewAdmins creates a new Supabase-backed admin store.
func NewAdmins(client *supa.Client) *Admins {
	return &Admins{client: client}
}

// adminRow is the internal representation for Supabase PostgREST rows.
type adminRow struct {
	ID           int64  `json:"id,omitempty"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// GetByUsername retrieves an admin by username. Returns nil, nil when not found.
func (s *Admins) GetByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	data, _, err := s.client.From(adminsTable).
		Select("*", "exact", false).
		Eq("username", username).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching admin: %w", err)
	}

	var rows []adminRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing admin: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	a := &admin.Admin{
		ID:           rows[0].ID,
		Username:     rows[0].Username,
		Email:        rows[0].Email,
		PasswordHash: rows[0].PasswordHash,
	}
	if rows[0].CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, rows[0].CreatedAt); err == nil {
			a.CreatedAt = t
		}
	}
	return a, nil
}

// Create inserts a new admin account.
func (s *Admins) Create(ctx context.Context, a *admin.Admin) error {
	row := adminRow{
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
	}

	data, _, err := s.client.From(adminsTable).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return fmt.Errorf("inserting admin: %w", err)
	}

	var results []adminRow
	if err := json.Unmarshal(data, &results); err != nil {
		return fmt.Errorf("parsing insert response: %w", err)
	}
	if len(results) > 0 {
		a.ID = results[0].ID
	}
	return nil
}

// Any reports whether at least one admin account exists.
func (s *Admins) Any(ctx context.Context) (bool, error) {
	_, count, err := s.client.From(adminsTable).
		Select("id", "exact", false).
		Execute()
	if err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}
	return count > 0, nil
}
