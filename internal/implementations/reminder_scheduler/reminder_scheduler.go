package reminderscheduler

import (
	"context"
	"sync"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	"time"
)

type stopTimer interface {
	Stop() bool
}

type timerFactory func(d time.Duration, fn func()) stopTimer

type realTimer struct {
	timer *time.Timer
}

func (t realTimer) Stop() bool {
	return t.timer.Stop()
}

type handle struct {
	task   task.Task
	fireAt time.Time
	timer  stopTimer
}

// Timers keeps one pending timer per task id. All timer state lives in
// process memory and is rebuilt from the database on startup.
type Timers struct {
	log       logging.Logger
	sender    reminder.Sender
	now       func() time.Time
	newTimer  timerFactory
	lock      sync.Mutex
	handles   map[task.ID]*handle
	isStopped bool
}

func NewTimers(log logging.Logger, sender reminder.Sender) *Timers {
	return newTimers(
		log,
		sender,
		func() time.Time { return time.Now().UTC() },
		func(d time.Duration, fn func()) stopTimer { return realTimer{timer: time.AfterFunc(d, fn)} },
	)
}

func newTimers(log logging.Logger, sender reminder.Sender, now func() time.Time, newTimer timerFactory) *Timers {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if newTimer == nil {
		panic(e.NewNilArgumentError("newTimer"))
	}
	return &Timers{
		log:      log,
		sender:   sender,
		now:      now,
		newTimer: newTimer,
		handles:  make(map[task.ID]*handle),
	}
}

func (s *Timers) Arm(ctx context.Context, t task.Task) error {
	fireAt, ok := t.ReminderFireAt()
	if !ok {
		return nil
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.isStopped {
		return reminder.ErrSchedulerStopped
	}
	s.dropLocked(t.ID)
	if !fireAt.After(s.now()) {
		s.log.Info(
			ctx,
			"Reminder fire time already passed, task left unscheduled.",
			logging.Entry("taskID", t.ID),
			logging.Entry("fireAt", fireAt),
		)
		return nil
	}
	s.armLocked(t, fireAt)
	return nil
}

func (s *Timers) Cancel(ctx context.Context, id task.ID) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.dropLocked(id)
}

func (s *Timers) Replace(ctx context.Context, t task.Task) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.isStopped {
		return reminder.ErrSchedulerStopped
	}

	fireAt, ok := t.ReminderFireAt()
	if !ok {
		s.dropLocked(t.ID)
		return nil
	}

	if pending, exists := s.handles[t.ID]; exists && pending.fireAt.Equal(fireAt) {
		// Same fire time, keep the pending timer so the reminder
		// neither double-fires nor gets dropped.
		pending.task = t
		return nil
	}

	s.dropLocked(t.ID)
	if !fireAt.After(s.now()) {
		return nil
	}
	s.armLocked(t, fireAt)
	return nil
}

// Stop cancels all pending timers. Timers that already fired may still
// complete their dispatch.
func (s *Timers) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.isStopped = true
	for id := range s.handles {
		s.dropLocked(id)
	}
}

func (s *Timers) PendingCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.handles)
}

func (s *Timers) armLocked(t task.Task, fireAt time.Time) {
	h := &handle{task: t, fireAt: fireAt}
	h.timer = s.newTimer(fireAt.Sub(s.now()), func() { s.fire(t.ID, fireAt) })
	s.handles[t.ID] = h
}

func (s *Timers) dropLocked(id task.ID) {
	if pending, exists := s.handles[id]; exists {
		pending.timer.Stop()
		delete(s.handles, id)
	}
}

func (s *Timers) fire(id task.ID, fireAt time.Time) {
	s.lock.Lock()
	pending, exists := s.handles[id]
	if !exists || !pending.fireAt.Equal(fireAt) {
		// The handle was cancelled or replaced while this timer was
		// firing.
		s.lock.Unlock()
		return
	}
	delete(s.handles, id)
	s.lock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), reminder.DISPATCH_TIMEOUT)
	defer cancel()
	if err := s.sender.SendReminder(ctx, pending.task); err != nil {
		// Dispatch failures are logged and discarded, reminders are
		// best effort.
		logging.Error(ctx, s.log, err, logging.Entry("taskID", id))
	}
}
