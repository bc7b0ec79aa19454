package member

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskTypeReminderSweep is the asynq task type for the periodic expiry
// reminder sweep.
const TaskTypeReminderSweep = "member:reminder_sweep"

// ReminderSweepPayload is the serialized payload for a sweep task.
type ReminderSweepPayload struct {
	// ScheduledFor records when the sweep was enqueued, for log correlation.
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewReminderSweepTask creates an asynq task for the reminder sweep.
func NewReminderSweepTask() (*asynq.Task, error) {
	payload, err := json.Marshal(ReminderSweepPayload{ScheduledFor: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("marshaling sweep payload: %w", err)
	}
	return asynq.NewTask(TaskTypeReminderSweep, payload), nil
}

// ParseReminderSweepPayload deserializes the task payload.
func ParseReminderSweepPayload(data []byte) (*ReminderSweepPayload, error) {
	var p ReminderSweepPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshaling sweep payload: %w", err)
	}
	return &p, nil
}
