package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gymdesk/internal/domain/notification"

	"github.com/google/uuid"
)

var _ notification.Provider = (*Mock)(nil)

// Mock is the delivery backend for development and testing. It never
// contacts a real network service: every send succeeds, is printed to
// stdout as a human-readable block, and is logged through slog.
//
// Safe to run in production since no real message leaves the process.
type Mock struct{}

// NewMock creates a new mock provider.
func NewMock() *Mock {
	return &Mock{}
}

// Name identifies the provider in logs and result metadata.
func (p *Mock) Name() string {
	return "mock"
}

// Send logs the message locally and reports success. The synthesized
// message ID is unique per call: "mock_" followed by 12 hex characters.
func (p *Mock) Send(ctx context.Context, phone, message string) notification.Result {
	messageID := "mock_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	now := time.Now()

	divider := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n", divider)
	fmt.Println("📱 NOTIFICATION (Mock Delivery)")
	fmt.Println(divider)
	fmt.Printf("To: %s\n", phone)
	fmt.Printf("Message: %s\n", message)
	fmt.Printf("ID: %s\n", messageID)
	fmt.Printf("Time: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Printf("%s\n\n", divider)

	slog.Info("mock notification delivered",
		"to", phone,
		"message_id", messageID,
		"preview", preview(message),
	)

	return notification.Result{
		Success:   true,
		MessageID: messageID,
		Status:    notification.StatusMock,
		Channel:   notification.ChannelSMS,
		Metadata: map[string]any{
			"provider":  p.Name(),
			"phone":     phone,
			"timestamp": now.Format(time.RFC3339),
		},
	}
}

// SendBulk delivers sequentially; the mock has no native batch API.
func (p *Mock) SendBulk(ctx context.Context, phones []string, message string) notification.BulkResult {
	return notification.SendSequential(ctx, p, phones, message)
}

// preview truncates a message for log lines.
func preview(message string) string {
	const max = 50
	runes := []rune(message)
	if len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "..."
}
