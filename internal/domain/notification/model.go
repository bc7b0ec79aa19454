package notification

import (
	"fmt"
	"time"
)

// Type enumerates all notification categories in the system.
// Used for audit tagging and template selection, never for delivery behavior.
type Type string

const (
	TypeMembershipConfirmation Type = "membership_confirmation"
	TypeExpiryReminder         Type = "expiry_reminder"
	TypeMembershipExpired      Type = "membership_expired"
	TypeBroadcast              Type = "broadcast"
	TypePaymentReminder        Type = "payment_reminder"
	TypeWelcome                Type = "welcome"
	TypeRenewalSuccess         Type = "renewal_success"
)

// Channel represents a notification delivery channel.
// Currently only SMS is delivered (via the mock provider), but the enum is
// designed for future expansion.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
	ChannelPush     Channel = "push"
)

// Status represents the delivery status of a single send attempt.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusMock      Status = "mock" // used when running the mock provider
)

// Member is the read-only view of a gym member the notification core needs.
// The CRUD layer owns the full member record; this core only reads
// name, phone, plan, and end date, and never mutates the member.
type Member struct {
	ID             int64
	Name           string
	Phone          string
	MembershipPlan string
	EndDate        *time.Time
}

// Result is the standardized outcome of a single send attempt.
// One instance per attempt; treated as immutable once constructed.
// Its fields form the wire contract consumed by the HTTP layer.
type Result struct {
	Success   bool           `json:"success"`
	MessageID string         `json:"message_id,omitempty"`
	Status    Status         `json:"status"`
	Channel   Channel        `json:"channel"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// BulkResult is the aggregate outcome of sending the same message to many
// recipients. Results preserves every individual outcome in input order.
type BulkResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"-"`
}

// Success reports whether at least one delivery succeeded (not all).
func (b BulkResult) Success() bool {
	return b.Successful > 0
}

// SuccessRate returns the delivery success percentage rounded to one
// decimal, or "0%" when nothing was sent.
func (b BulkResult) SuccessRate() string {
	if b.Total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(b.Successful)/float64(b.Total)*100)
}

// Payload returns the serializable summary of a bulk send, the shape the
// HTTP layer exposes to callers.
func (b BulkResult) Payload() map[string]any {
	return map[string]any{
		"total":        b.Total,
		"successful":   b.Successful,
		"failed":       b.Failed,
		"success_rate": b.SuccessRate(),
	}
}

// Aggregate builds a BulkResult from individual send outcomes.
// Invariant: Total == Successful + Failed == len(results).
func Aggregate(results []Result) BulkResult {
	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	return BulkResult{
		Total:      len(results),
		Successful: successful,
		Failed:     len(results) - successful,
		Results:    results,
	}
}
