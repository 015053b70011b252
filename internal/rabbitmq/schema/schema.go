package schema

import (
	"encoding/json"
	"time"
)

// DueReminder is the message published when a reminder timer fires.
// StartAt is the task's start time at arming; the consumer compares it
// against the stored task and drops the message if they diverged.
type DueReminder struct {
	TaskID  int64
	StartAt time.Time
}

func (r *DueReminder) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *DueReminder) Unmarshal(data []byte) error {
	return json.Unmarshal(data, r)
}
