package notification

import "context"

// AuditStore persists a durable record of every notification attempt.
// Implementations live in infra/store.
//
// Audit writes are a best-effort side channel: the orchestrator catches and
// logs failures, and the parent notification call is never affected.
type AuditStore interface {
	// Create writes one audit record with the given message text and the
	// set of associated member IDs (empty for an empty broadcast). The
	// creation timestamp is assigned by the store and is immutable.
	Create(ctx context.Context, message string, memberIDs []int64) error
}
