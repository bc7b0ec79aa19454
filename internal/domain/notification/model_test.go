package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	t.Run("MixedOutcomes", func(t *testing.T) {
		results := []Result{
			{Success: true, Status: StatusMock},
			{Success: false, Status: StatusFailed, Error: "no signal"},
			{Success: true, Status: StatusMock},
		}

		bulk := Aggregate(results)
		assert.Equal(t, 3, bulk.Total)
		assert.Equal(t, 2, bulk.Successful)
		assert.Equal(t, 1, bulk.Failed)
		assert.Equal(t, bulk.Total, bulk.Successful+bulk.Failed)
		assert.Len(t, bulk.Results, bulk.Total)
		assert.True(t, bulk.Success())
	})

	t.Run("AllFailed", func(t *testing.T) {
		bulk := Aggregate([]Result{
			{Success: false, Status: StatusFailed},
			{Success: false, Status: StatusFailed},
		})
		assert.Equal(t, 2, bulk.Failed)
		assert.False(t, bulk.Success())
	})

	t.Run("Empty", func(t *testing.T) {
		bulk := Aggregate(nil)
		assert.Equal(t, 0, bulk.Total)
		assert.False(t, bulk.Success())
	})
}

func TestBulkResultSuccessRate(t *testing.T) {
	t.Run("ZeroTotal", func(t *testing.T) {
		assert.Equal(t, "0%", BulkResult{}.SuccessRate())
	})

	t.Run("OneDecimal", func(t *testing.T) {
		bulk := BulkResult{Total: 3, Successful: 2, Failed: 1}
		assert.Equal(t, "66.7%", bulk.SuccessRate())
	})

	t.Run("AllDelivered", func(t *testing.T) {
		bulk := BulkResult{Total: 4, Successful: 4}
		assert.Equal(t, "100.0%", bulk.SuccessRate())
	})
}

func TestBulkResultPayload(t *testing.T) {
	bulk := BulkResult{Total: 2, Successful: 1, Failed: 1}
	payload := bulk.Payload()

	assert.Equal(t, 2, payload["total"])
	assert.Equal(t, 1, payload["successful"])
	assert.Equal(t, 1, payload["failed"])
	assert.Equal(t, "50.0%", payload["success_rate"])
}
