package task

import (
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/user"
	"time"
)

type ID int64

type Task struct {
	ID          ID
	CreatedBy   user.ID
	Title       string
	Description string
	Date        time.Time
	StartAt     c.Optional[time.Time]
	EndAt       c.Optional[time.Time]
	Priority    Priority
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return e.NewInvalidStateError("task title is not set")
	}
	if t.StartAt.IsPresent != t.EndAt.IsPresent {
		return e.NewInvalidStateError("start and end time must be set together")
	}
	if t.StartAt.IsPresent && !t.StartAt.Value.Before(t.EndAt.Value) {
		return ErrInvalidInterval
	}
	return nil
}

// Interval returns the task's time slot when both start and end are set.
func (t *Task) Interval() (Interval, bool) {
	if !t.StartAt.IsPresent || !t.EndAt.IsPresent {
		return Interval{}, false
	}
	return Interval{Start: t.StartAt.Value, End: t.EndAt.Value}, true
}

// ReminderFireAt returns the instant a reminder for this task should fire,
// 30 minutes before the start time.
func (t *Task) ReminderFireAt() (time.Time, bool) {
	if !t.StartAt.IsPresent {
		return time.Time{}, false
	}
	return t.StartAt.Value.Add(-REMINDER_LEAD_TIME), true
}

const REMINDER_LEAD_TIME = 30 * time.Minute
