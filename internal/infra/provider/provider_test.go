package provider

import (
	"context"
	"regexp"
	"testing"

	"gymdesk/internal/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mockIDPattern = regexp.MustCompile(`^mock_[0-9a-f]{12}$`)

func TestMockSend(t *testing.T) {
	p := NewMock()

	t.Run("AlwaysSucceeds", func(t *testing.T) {
		result := p.Send(context.Background(), "+911234567890", "hello")

		assert.True(t, result.Success)
		assert.Equal(t, notification.StatusMock, result.Status)
		assert.Equal(t, notification.ChannelSMS, result.Channel)
		assert.Empty(t, result.Error)
		assert.Regexp(t, mockIDPattern, result.MessageID)

		require.NotNil(t, result.Metadata)
		assert.Equal(t, "mock", result.Metadata["provider"])
		assert.Equal(t, "+911234567890", result.Metadata["phone"])
		assert.NotEmpty(t, result.Metadata["timestamp"])
	})

	t.Run("UniqueMessageIDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			result := p.Send(context.Background(), "p", "m")
			assert.False(t, seen[result.MessageID], "duplicate message id %s", result.MessageID)
			seen[result.MessageID] = true
		}
	})
}

func TestMockSendBulk(t *testing.T) {
	p := NewMock()
	phones := []string{"p1", "p2", "p3"}

	bulk := p.SendBulk(context.Background(), phones, "hello everyone")

	assert.Equal(t, 3, bulk.Total)
	assert.Equal(t, 3, bulk.Successful)
	assert.Equal(t, 0, bulk.Failed)
	require.Len(t, bulk.Results, 3)
	for i, r := range bulk.Results {
		assert.True(t, r.Success)
		assert.Equal(t, phones[i], r.Metadata["phone"], "results preserve input order")
	}
}

func TestResolver(t *testing.T) {
	t.Run("KnownProvider", func(t *testing.T) {
		r := NewResolver("mock")
		_, ok := r.Provider().(*Mock)
		assert.True(t, ok)
	})

	t.Run("UnknownFallsBackToMock", func(t *testing.T) {
		r := NewResolver("msg91")
		_, ok := r.Provider().(*Mock)
		assert.True(t, ok, "unrecognized provider names resolve to mock, never an error")
	})

	t.Run("ConstructsAtMostOnce", func(t *testing.T) {
		r := NewResolver("mock")
		first := r.Provider()
		second := r.Provider()
		assert.Same(t, first, second)
	})
}
