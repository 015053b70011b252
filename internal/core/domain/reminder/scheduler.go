package reminder

import (
	"context"
	"errors"
	"taskflow/internal/core/domain/task"
	"time"
)

// ErrSchedulerStopped is returned by Arm and Replace after the scheduler
// has been shut down.
var ErrSchedulerStopped = errors.New("reminder scheduler is stopped")

// DISPATCH_TIMEOUT bounds a single dispatch attempt so a slow transport
// never blocks timer management for other reminders.
const DISPATCH_TIMEOUT = 30 * time.Second

// Scheduler owns the mapping from task id to pending reminder handle.
// Implementations must serialize Arm, Cancel and Replace against a firing
// timer for the same id.
type Scheduler interface {
	// Arm registers a one-shot reminder 30 minutes before the task's
	// start time. Tasks without a start time, or whose fire time has
	// already passed, are left unscheduled.
	Arm(ctx context.Context, t task.Task) error
	// Cancel drops any pending handle for the task. Cancelling a task
	// without a handle is a no-op.
	Cancel(ctx context.Context, id task.ID)
	// Replace re-derives the handle for an edited task. If the computed
	// fire time equals the pending handle's, the handle is left alone so
	// the reminder neither double-fires nor gets dropped.
	Replace(ctx context.Context, t task.Task) error
}

// Sender hands a due reminder to the outbound notification transport.
type Sender interface {
	SendReminder(ctx context.Context, t task.Task) error
}
