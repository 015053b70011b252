package reminderscheduler

import (
	"context"
	"errors"
	"sync"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now time.Time = time.Date(2020, 6, 6, 12, 0, 0, 0, time.UTC)

type fakeTimer struct {
	duration time.Duration
	fn       func()
	stopped  bool
}

func (t *fakeTimer) Stop() bool {
	wasStopped := t.stopped
	t.stopped = true
	return !wasStopped
}

// Fire runs the timer callback the way time.AfterFunc would, on expiry.
func (t *fakeTimer) Fire() {
	if !t.stopped {
		t.fn()
	}
}

type testSuite struct {
	suite.Suite
	logger    *logging.FakeLogger
	sender    *reminder.TestSender
	timers    []*fakeTimer
	scheduler *Timers
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.sender = reminder.NewTestSender()
	suite.timers = nil
	suite.scheduler = newTimers(
		suite.logger,
		suite.sender,
		func() time.Time { return Now },
		func(d time.Duration, fn func()) stopTimer {
			t := &fakeTimer{duration: d, fn: fn}
			suite.timers = append(suite.timers, t)
			return t
		},
	)
}

func TestTimersScheduler(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func newTask(id task.ID, startAt time.Time) task.Task {
	return task.Task{
		ID:      id,
		Title:   "Standup",
		StartAt: c.NewOptional(startAt, true),
		EndAt:   c.NewOptional(startAt.Add(time.Hour), true),
	}
}

func (s *testSuite) TestArmSetsTimerForLeadTime() {
	err := s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour)))

	s.Nil(err)
	s.Equal(1, s.scheduler.PendingCount())
	s.Require().Len(s.timers, 1)
	s.Equal(2*time.Hour-task.REMINDER_LEAD_TIME, s.timers[0].duration)
}

func (s *testSuite) TestArmSkipsTaskWithoutTimeSlot() {
	err := s.scheduler.Arm(context.Background(), task.Task{ID: task.ID(1), Title: "Untimed"})

	s.Nil(err)
	s.Equal(0, s.scheduler.PendingCount())
	s.Empty(s.timers)
}

func (s *testSuite) TestArmSkipsPastFireTime() {
	// Fire time would be 10 minutes before now.
	err := s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(20*time.Minute)))

	s.Nil(err)
	s.Equal(0, s.scheduler.PendingCount())
	s.Empty(s.timers)
	s.Equal(1, s.logger.CountByLevel(logging.INFO))
}

func (s *testSuite) TestFireDispatchesAndClearsHandle() {
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))

	s.timers[0].Fire()

	s.Equal(1, s.sender.SentCount())
	s.Equal(task.ID(1), s.sender.Sent[0].ID)
	s.Equal(0, s.scheduler.PendingCount())
}

func (s *testSuite) TestCancelStopsTimer() {
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))

	s.scheduler.Cancel(context.Background(), task.ID(1))

	s.True(s.timers[0].stopped)
	s.Equal(0, s.scheduler.PendingCount())

	s.timers[0].Fire()
	s.Equal(0, s.sender.SentCount())
}

func (s *testSuite) TestCancelUnknownTaskIsNoop() {
	s.scheduler.Cancel(context.Background(), task.ID(999))

	s.Equal(0, s.scheduler.PendingCount())
}

func (s *testSuite) TestRearmReplacesPendingTimer() {
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(3*time.Hour))))

	s.Equal(1, s.scheduler.PendingCount())
	s.Require().Len(s.timers, 2)
	s.True(s.timers[0].stopped)
	s.False(s.timers[1].stopped)
}

func (s *testSuite) TestReplaceWithNewStartTime() {
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))

	err := s.scheduler.Replace(context.Background(), newTask(task.ID(1), Now.Add(4*time.Hour)))

	s.Nil(err)
	s.Equal(1, s.scheduler.PendingCount())
	s.Require().Len(s.timers, 2)
	s.True(s.timers[0].stopped)
	s.Equal(4*time.Hour-task.REMINDER_LEAD_TIME, s.timers[1].duration)
}

func (s *testSuite) TestReplaceWithUnchangedStartTimeKeepsTimer() {
	startAt := Now.Add(2 * time.Hour)
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), startAt)))

	edited := newTask(task.ID(1), startAt)
	edited.Title = "Renamed standup"
	err := s.scheduler.Replace(context.Background(), edited)

	s.Nil(err)
	s.Require().Len(s.timers, 1)
	s.False(s.timers[0].stopped)

	s.timers[0].Fire()
	s.Require().Equal(1, s.sender.SentCount())
	s.Equal("Renamed standup", s.sender.Sent[0].Title)
}

func (s *testSuite) TestReplaceClearsTimerWhenSlotRemoved() {
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))

	err := s.scheduler.Replace(context.Background(), task.Task{ID: task.ID(1), Title: "Untimed"})

	s.Nil(err)
	s.Equal(0, s.scheduler.PendingCount())
	s.True(s.timers[0].stopped)
}

func (s *testSuite) TestReplaceWithPastFireTimeDropsHandle() {
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))

	err := s.scheduler.Replace(context.Background(), newTask(task.ID(1), Now.Add(10*time.Minute)))

	s.Nil(err)
	s.Equal(0, s.scheduler.PendingCount())
	s.Require().Len(s.timers, 1)
	s.True(s.timers[0].stopped)
}

func (s *testSuite) TestReplaceWithoutPendingHandleArms() {
	err := s.scheduler.Replace(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour)))

	s.Nil(err)
	s.Equal(1, s.scheduler.PendingCount())
}

func (s *testSuite) TestStaleFireAfterReplaceIsDiscarded() {
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))
	staleTimer := s.timers[0]
	s.Nil(s.scheduler.Replace(context.Background(), newTask(task.ID(1), Now.Add(4*time.Hour))))

	// Simulate the race where the old timer callback runs after Stop
	// already returned false.
	staleTimer.stopped = false
	staleTimer.Fire()

	s.Equal(0, s.sender.SentCount())
	s.Equal(1, s.scheduler.PendingCount())
}

func (s *testSuite) TestSenderErrorIsLoggedAndDiscarded() {
	s.sender.SendError = errors.New("transport is down")
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))

	s.timers[0].Fire()

	s.Equal(1, s.logger.CountByLevel(logging.ERROR))
	s.Equal(0, s.scheduler.PendingCount())
}

func (s *testSuite) TestConcurrentArmAndCancel() {
	// Real timers with far-future fire times, so none fire during the test.
	scheduler := NewTimers(s.logger, s.sender)
	defer scheduler.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := task.ID(i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Nil(scheduler.Arm(context.Background(), newTask(id, time.Now().UTC().Add(24*time.Hour))))
		}()
		go func() {
			defer wg.Done()
			scheduler.Cancel(context.Background(), id)
		}()
	}
	wg.Wait()

	// Every id ends up either armed or cancelled, never duplicated.
	s.LessOrEqual(scheduler.PendingCount(), 50)
	for i := 0; i < 50; i++ {
		scheduler.Cancel(context.Background(), task.ID(i))
	}
	s.Equal(0, scheduler.PendingCount())
}

func (s *testSuite) TestStop() {
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(1), Now.Add(2*time.Hour))))
	s.Nil(s.scheduler.Arm(context.Background(), newTask(task.ID(2), Now.Add(3*time.Hour))))

	s.scheduler.Stop()

	s.Equal(0, s.scheduler.PendingCount())
	s.ErrorIs(s.scheduler.Arm(context.Background(), newTask(task.ID(3), Now.Add(4*time.Hour))), reminder.ErrSchedulerStopped)
	s.ErrorIs(s.scheduler.Replace(context.Background(), newTask(task.ID(1), Now.Add(5*time.Hour))), reminder.ErrSchedulerStopped)
}
