package member

import (
	"context"
	"time"
)

// Store defines the contract for persisting member records.
// Implementations live in infra/store.
type Store interface {
	// Create inserts a new member and fills in the assigned ID.
	Create(ctx context.Context, m *Member) error

	// GetByID retrieves a member by ID. Returns nil, nil when not found.
	GetByID(ctx context.Context, id int64) (*Member, error)

	// List retrieves all members.
	List(ctx context.Context) ([]*Member, error)

	// ListByStatus retrieves all members with the given status.
	ListByStatus(ctx context.Context, status string) ([]*Member, error)

	// ListExpiringBetween retrieves active members whose end date falls in
	// [from, to], ordered by end date ascending.
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*Member, error)

	// Update persists changes to an existing member.
	Update(ctx context.Context, m *Member) error

	// Delete removes a member by ID.
	Delete(ctx context.Context, id int64) error

	// Counts returns total, active, and expired member counts.
	Counts(ctx context.Context) (total, active, expired int, err error)
}

// StatsCache caches dashboard summaries. Implementations are fail-open:
// a broken cache degrades to recomputation, never to an error surfaced to
// the caller.
type StatsCache interface {
	// Get returns the cached stats, or nil on a miss.
	Get(ctx context.Context) *DashboardStats

	// Set stores the stats until the cache TTL elapses.
	Set(ctx context.Context, stats *DashboardStats)

	// Invalidate drops the cached stats after a membership change.
	Invalidate(ctx context.Context)
}
