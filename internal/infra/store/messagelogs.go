package store

import (
	"context"
	"fmt"

	"gymdesk/internal/domain/notification"

	supa "github.com/supabase-community/supabase-go"
)

const messageLogsTable = "message_logs"

var _ notification.AuditStore = (*MessageLogs)(nil)

// MessageLogs implements notification.AuditStore using the Supabase Go SDK.
// Each row is one audit record: the tagged message text, the associated
// member IDs, and a creation timestamp assigned by the database.
type MessageLogs struct {
	client *supa.Client
}

// NewMessageLogs creates a new Supabase-backed audit store.
func NewMessageLogs(client *supa.Client) *MessageLogs {
	return &MessageLogs{client: client}
}

// messageLogRow is the internal representation for Supabase PostgREST inserts.
// sent_at is assigned by the database default.
type messageLogRow struct {
	Message   string  `json:"message"`
	MemberIDs []int64 `json:"member_ids"`
}

// Create writes one audit record.
func (s *MessageLogs) Create(ctx context.Context, message string, memberIDs []int64) error {
	if memberIDs == nil {
		memberIDs = []int64{}
	}
	row := messageLogRow{
		Message:   message,
		MemberIDs: memberIDs,
	}

	_, _, err := s.client.From(messageLogsTable).Insert(row, false, "", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("inserting message log: %w", err)
	}
	return nil
}
