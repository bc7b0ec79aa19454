package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gymdesk/internal/metrics"
)

// Service orchestrates outbound member notifications.
//
// Every operation follows the same shape: resolve the provider, render the
// message, invoke the send, record a best-effort audit entry tagged with the
// notification type, and return the provider's result to the caller. Side
// effects are not transactional; the result reflects the provider call alone.
type Service struct {
	providers Resolver
	audit     AuditStore
	renderer  *Renderer
}

// NewService creates a new notification service.
func NewService(providers Resolver, audit AuditStore, renderer *Renderer) *Service {
	if renderer == nil {
		renderer = &Renderer{}
	}
	return &Service{
		providers: providers,
		audit:     audit,
		renderer:  renderer,
	}
}

// SendWelcomeMessage sends the welcome message to a new member.
func (s *Service) SendWelcomeMessage(ctx context.Context, member Member) Result {
	message := s.renderer.Welcome(member.Name)
	result := s.providers.Provider().Send(ctx, member.Phone, message)
	s.logNotification(ctx, []int64{member.ID}, message, TypeWelcome, result)
	return result
}

// SendMembershipConfirmation sends the confirmation after registration or
// renewal. The plan code is mapped to its human label before rendering,
// falling back to the raw code if unmapped.
func (s *Service) SendMembershipConfirmation(ctx context.Context, member Member) Result {
	message := s.renderer.Confirmation(member)
	result := s.providers.Provider().Send(ctx, member.Phone, message)
	s.logNotification(ctx, []int64{member.ID}, message, TypeMembershipConfirmation, result)
	return result
}

// SendExpiryReminder sends a membership expiry reminder. The audit entry is
// tagged membership_expired when daysLeft <= 0, expiry_reminder otherwise.
func (s *Service) SendExpiryReminder(ctx context.Context, member Member, daysLeft int) Result {
	message := s.renderer.Expiry(member.Name, daysLeft)
	result := s.providers.Provider().Send(ctx, member.Phone, message)

	notifType := TypeExpiryReminder
	if daysLeft <= 0 {
		notifType = TypeMembershipExpired
	}
	s.logNotification(ctx, []int64{member.ID}, message, notifType, result)
	return result
}

// SendRenewalConfirmation sends the confirmation after a successful renewal.
func (s *Service) SendRenewalConfirmation(ctx context.Context, member Member) Result {
	message := s.renderer.Renewal(member)
	result := s.providers.Provider().Send(ctx, member.Phone, message)
	s.logNotification(ctx, []int64{member.ID}, message, TypeRenewalSuccess, result)
	return result
}

// SendPaymentReminder reminds a member about a pending payment. The amount
// is formatted with thousands separators and two decimal places.
func (s *Service) SendPaymentReminder(ctx context.Context, member Member, amount float64) Result {
	message := s.renderer.PaymentReminder(member.Name, amount)
	result := s.providers.Provider().Send(ctx, member.Phone, message)
	s.logNotification(ctx, []int64{member.ID}, message, TypePaymentReminder, result)
	return result
}

// SendBroadcastMessage fans one message out to every member in input order,
// with the gym-name-bracketed prefix prepended. One audit entry covers the
// whole broadcast, associated with all recipients and recording the
// aggregate successful/failed counts.
//
// An empty member list yields a zero BulkResult and writes no audit entry.
func (s *Service) SendBroadcastMessage(ctx context.Context, members []Member, message string) BulkResult {
	fullMessage := s.renderer.Broadcast(message)

	if len(members) == 0 {
		return BulkResult{Results: []Result{}}
	}

	phones := make([]string, len(members))
	memberIDs := make([]int64, len(members))
	for i, m := range members {
		phones[i] = m.Phone
		memberIDs[i] = m.ID
	}

	bulk := s.providers.Provider().SendBulk(ctx, phones, fullMessage)

	auditText := fmt.Sprintf("%s (delivered %d/%d)", fullMessage, bulk.Successful, bulk.Total)
	s.logBroadcast(ctx, memberIDs, auditText, bulk)

	metrics.RecordBroadcast(bulk.Successful, bulk.Failed)
	slog.Info("broadcast sent",
		"total", bulk.Total,
		"successful", bulk.Successful,
		"failed", bulk.Failed,
	)

	return bulk
}

// SendCustomMessage sends ad-hoc text to a single member, bypassing
// templates. notifType tags the audit entry; pass TypeBroadcast for
// one-off messages with no better category.
func (s *Service) SendCustomMessage(ctx context.Context, member Member, message string, notifType Type) Result {
	if notifType == "" {
		notifType = TypeBroadcast
	}
	result := s.providers.Provider().Send(ctx, member.Phone, message)
	s.logNotification(ctx, []int64{member.ID}, message, notifType, result)
	return result
}

// logNotification writes one audit entry for a single send. Failures are
// logged and swallowed; audit is best effort and never fails the caller.
func (s *Service) logNotification(ctx context.Context, memberIDs []int64, message string, notifType Type, result Result) {
	metrics.RecordSend(string(notifType), string(result.Status))

	logMessage := auditMessage(notifType, message)
	if err := s.audit.Create(ctx, logMessage, memberIDs); err != nil {
		slog.Error("failed to log notification",
			"type", notifType,
			"members", len(memberIDs),
			"error", err,
		)
	}
}

// logBroadcast writes the single audit entry covering a whole broadcast.
func (s *Service) logBroadcast(ctx context.Context, memberIDs []int64, message string, bulk BulkResult) {
	status := StatusFailed
	if bulk.Success() {
		status = StatusSent
	}
	metrics.RecordSend(string(TypeBroadcast), string(status))

	logMessage := auditMessage(TypeBroadcast, message)
	if err := s.audit.Create(ctx, logMessage, memberIDs); err != nil {
		slog.Error("failed to log broadcast",
			"recipients", len(memberIDs),
			"error", err,
		)
	}
}

// auditMessage prefixes the message body with the uppercase type tag used
// for filtering audit records.
func auditMessage(notifType Type, message string) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(notifType)), message)
}
