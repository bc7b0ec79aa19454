package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider returns scripted results, defaulting to success.
type fakeProvider struct {
	scripted []Result
	sent     []sentCall
}

type sentCall struct {
	phone   string
	message string
}

func (p *fakeProvider) Send(ctx context.Context, phone, message string) Result {
	p.sent = append(p.sent, sentCall{phone: phone, message: message})
	if len(p.scripted) > 0 {
		r := p.scripted[0]
		p.scripted = p.scripted[1:]
		return r
	}
	return Result{Success: true, MessageID: "fake_1", Status: StatusMock, Channel: ChannelSMS}
}

func (p *fakeProvider) SendBulk(ctx context.Context, phones []string, message string) BulkResult {
	return SendSequential(ctx, p, phones, message)
}

func (p *fakeProvider) Name() string { return "fake" }

// fakeResolver hands out a fixed provider.
type fakeResolver struct {
	p Provider
}

func (r *fakeResolver) Provider() Provider { return r.p }

// fakeAudit records audit entries and can be scripted to fail.
type fakeAudit struct {
	entries []auditEntry
	failErr error
}

type auditEntry struct {
	message   string
	memberIDs []int64
}

func (a *fakeAudit) Create(ctx context.Context, message string, memberIDs []int64) error {
	if a.failErr != nil {
		return a.failErr
	}
	a.entries = append(a.entries, auditEntry{message: message, memberIDs: memberIDs})
	return nil
}

func newTestService(p Provider, a AuditStore) *Service {
	return NewService(&fakeResolver{p: p}, a, &Renderer{})
}

func TestServiceSendWelcomeMessage(t *testing.T) {
	provider := &fakeProvider{}
	audit := &fakeAudit{}
	svc := newTestService(provider, audit)

	result := svc.SendWelcomeMessage(context.Background(), Member{ID: 7, Name: "Asha", Phone: "+911234567890"})

	assert.True(t, result.Success)
	require.Len(t, provider.sent, 1)
	assert.Equal(t, "+911234567890", provider.sent[0].phone)
	assert.Contains(t, provider.sent[0].message, "Welcome to")

	require.Len(t, audit.entries, 1)
	assert.True(t, strings.HasPrefix(audit.entries[0].message, "[WELCOME] "))
	assert.Equal(t, []int64{7}, audit.entries[0].memberIDs)
}

func TestServiceSendExpiryReminder(t *testing.T) {
	t.Run("NegativeDaysTaggedExpired", func(t *testing.T) {
		audit := &fakeAudit{}
		svc := newTestService(&fakeProvider{}, audit)

		svc.SendExpiryReminder(context.Background(), Member{ID: 1, Name: "Asha", Phone: "p"}, -2)

		require.Len(t, audit.entries, 1)
		assert.True(t, strings.HasPrefix(audit.entries[0].message, "[MEMBERSHIP_EXPIRED] "))
		assert.Contains(t, audit.entries[0].message, "has expired")
	})

	// The <= 0 branch wins on day zero: expired message, expired audit tag.
	t.Run("DayZeroTaggedExpired", func(t *testing.T) {
		audit := &fakeAudit{}
		svc := newTestService(&fakeProvider{}, audit)

		svc.SendExpiryReminder(context.Background(), Member{ID: 1, Name: "Asha", Phone: "p"}, 0)

		require.Len(t, audit.entries, 1)
		assert.True(t, strings.HasPrefix(audit.entries[0].message, "[MEMBERSHIP_EXPIRED] "))
		assert.Contains(t, audit.entries[0].message, "has expired")
	})

	t.Run("FutureDaysTaggedReminder", func(t *testing.T) {
		audit := &fakeAudit{}
		svc := newTestService(&fakeProvider{}, audit)

		svc.SendExpiryReminder(context.Background(), Member{ID: 1, Name: "Asha", Phone: "p"}, 5)

		require.Len(t, audit.entries, 1)
		assert.True(t, strings.HasPrefix(audit.entries[0].message, "[EXPIRY_REMINDER] "))
		assert.Contains(t, audit.entries[0].message, "5 days")
	})
}

func TestServiceSendMembershipConfirmation(t *testing.T) {
	provider := &fakeProvider{}
	audit := &fakeAudit{}
	svc := newTestService(provider, audit)

	svc.SendMembershipConfirmation(context.Background(), Member{ID: 2, Name: "Asha", Phone: "p", MembershipPlan: "both"})

	require.Len(t, provider.sent, 1)
	assert.Contains(t, provider.sent[0].message, "Plan: Strength + Cardio")
	assert.Contains(t, provider.sent[0].message, "Valid until: N/A")
	require.Len(t, audit.entries, 1)
	assert.True(t, strings.HasPrefix(audit.entries[0].message, "[MEMBERSHIP_CONFIRMATION] "))
}

func TestServiceSendPaymentReminder(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider, &fakeAudit{})

	svc.SendPaymentReminder(context.Background(), Member{ID: 3, Name: "Asha", Phone: "p"}, 1234.5)

	require.Len(t, provider.sent, 1)
	assert.Contains(t, provider.sent[0].message, "₹1,234.50")
}

func TestServiceSendBroadcastMessage(t *testing.T) {
	members := []Member{
		{ID: 1, Name: "A", Phone: "p1"},
		{ID: 2, Name: "B", Phone: "p2"},
		{ID: 3, Name: "C", Phone: "p3"},
	}

	t.Run("AggregatesInInputOrder", func(t *testing.T) {
		provider := &fakeProvider{scripted: []Result{
			{Success: true, MessageID: "m1", Status: StatusMock, Channel: ChannelSMS},
			{Success: false, Status: StatusFailed, Channel: ChannelSMS, Error: "unreachable"},
			{Success: true, MessageID: "m3", Status: StatusMock, Channel: ChannelSMS},
		}}
		audit := &fakeAudit{}
		svc := newTestService(provider, audit)

		bulk := svc.SendBroadcastMessage(context.Background(), members, "Closed tomorrow")

		assert.Equal(t, 3, bulk.Total)
		assert.Equal(t, 2, bulk.Successful)
		assert.Equal(t, 1, bulk.Failed)
		assert.True(t, bulk.Success())
		require.Len(t, bulk.Results, 3)
		assert.Equal(t, "m1", bulk.Results[0].MessageID)
		assert.False(t, bulk.Results[1].Success)
		assert.Equal(t, "m3", bulk.Results[2].MessageID)

		// Gym prefix reaches every recipient.
		require.Len(t, provider.sent, 3)
		for _, call := range provider.sent {
			assert.True(t, strings.HasPrefix(call.message, "["+DefaultGymName+"] "))
		}

		// One audit entry for the whole broadcast, associated with all
		// recipients and recording aggregate counts.
		require.Len(t, audit.entries, 1)
		assert.Equal(t, []int64{1, 2, 3}, audit.entries[0].memberIDs)
		assert.True(t, strings.HasPrefix(audit.entries[0].message, "[BROADCAST] "))
		assert.Contains(t, audit.entries[0].message, "delivered 2/3")
	})

	t.Run("EmptyRecipients", func(t *testing.T) {
		provider := &fakeProvider{}
		audit := &fakeAudit{}
		svc := newTestService(provider, audit)

		bulk := svc.SendBroadcastMessage(context.Background(), nil, "x")

		assert.Equal(t, 0, bulk.Total)
		assert.Equal(t, 0, bulk.Successful)
		assert.Equal(t, 0, bulk.Failed)
		assert.Empty(t, bulk.Results)
		assert.False(t, bulk.Success())
		assert.Empty(t, provider.sent)
		assert.Empty(t, audit.entries, "empty broadcast writes no audit entry")
	})
}

func TestServiceSendCustomMessage(t *testing.T) {
	t.Run("DefaultsToBroadcastTag", func(t *testing.T) {
		audit := &fakeAudit{}
		svc := newTestService(&fakeProvider{}, audit)

		svc.SendCustomMessage(context.Background(), Member{ID: 9, Phone: "p"}, "see front desk", "")

		require.Len(t, audit.entries, 1)
		assert.True(t, strings.HasPrefix(audit.entries[0].message, "[BROADCAST] see front desk"))
	})

	t.Run("ExplicitTag", func(t *testing.T) {
		audit := &fakeAudit{}
		svc := newTestService(&fakeProvider{}, audit)

		svc.SendCustomMessage(context.Background(), Member{ID: 9, Phone: "p"}, "pay up", TypePaymentReminder)

		require.Len(t, audit.entries, 1)
		assert.True(t, strings.HasPrefix(audit.entries[0].message, "[PAYMENT_REMINDER] "))
	})
}

func TestServiceAuditFailureNeverPropagates(t *testing.T) {
	audit := &fakeAudit{failErr: errors.New("db down")}
	svc := newTestService(&fakeProvider{}, audit)

	result := svc.SendWelcomeMessage(context.Background(), Member{ID: 1, Name: "Asha", Phone: "p"})
	assert.True(t, result.Success, "audit failure must not affect the send result")

	bulk := svc.SendBroadcastMessage(context.Background(), []Member{{ID: 1, Phone: "p"}}, "x")
	assert.True(t, bulk.Success())
}
