package createtask

import (
	"context"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	uow "taskflow/internal/core/domain/unit_of_work"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID(42)

var Now time.Time = time.Date(2020, 6, 6, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	unitOfWork *uow.FakeUnitOfWork
	scheduler  *reminder.TestScheduler
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.scheduler = reminder.NewTestScheduler()
	suite.service = New(
		suite.logger,
		suite.unitOfWork,
		suite.scheduler,
		func() time.Time { return Now },
	)
}

func TestCreateTaskService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccessWithoutTimeSlot() {
	result, err := s.service.Run(context.Background(), Input{
		User:  user.User{ID: USER_ID},
		Title: "Write report",
		Date:  Now,
	})

	s.Nil(err)
	s.Equal("Write report", result.Task.Title)
	s.False(result.Task.StartAt.IsPresent)
	s.True(s.unitOfWork.Context.WasCommitCalled)
	s.Empty(s.unitOfWork.Tasks().LockedUsers)
	s.Empty(s.scheduler.Armed)
}

func (s *testSuite) TestSuccessWithTimeSlotArmsReminder() {
	result, err := s.service.Run(context.Background(), Input{
		User:    user.User{ID: USER_ID},
		Title:   "Standup",
		Date:    Now,
		StartAt: c.NewOptional(Now.Add(time.Hour), true),
		EndAt:   c.NewOptional(Now.Add(2*time.Hour), true),
	})

	s.Nil(err)
	s.True(s.unitOfWork.Context.WasCommitCalled)
	s.Equal([]user.ID{USER_ID}, s.unitOfWork.Tasks().LockedUsers)
	s.Require().Len(s.scheduler.Armed, 1)
	s.Equal(result.Task.ID, s.scheduler.Armed[0].ID)
}

func (s *testSuite) TestInvalidInterval() {
	cases := []struct {
		id      string
		startAt c.Optional[time.Time]
		endAt   c.Optional[time.Time]
	}{
		{id: "start without end", startAt: c.NewOptional(Now, true)},
		{id: "end without start", endAt: c.NewOptional(Now, true)},
		{
			id:      "end before start",
			startAt: c.NewOptional(Now.Add(time.Hour), true),
			endAt:   c.NewOptional(Now, true),
		},
		{
			id:      "empty interval",
			startAt: c.NewOptional(Now, true),
			endAt:   c.NewOptional(Now, true),
		},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			_, err := s.service.Run(context.Background(), Input{
				User:    user.User{ID: USER_ID},
				Title:   "Standup",
				Date:    Now,
				StartAt: testcase.startAt,
				EndAt:   testcase.endAt,
			})

			s.ErrorIs(err, task.ErrInvalidInterval)
			s.Empty(s.unitOfWork.Tasks().Tasks)
			s.Empty(s.scheduler.Armed)
		})
	}
}

func (s *testSuite) TestConflictingTimeSlot() {
	s.unitOfWork.Tasks().Tasks = []task.Task{
		{
			ID:        task.ID(1),
			CreatedBy: USER_ID,
			Title:     "Existing meeting",
			StartAt:   c.NewOptional(Now.Add(time.Hour), true),
			EndAt:     c.NewOptional(Now.Add(2*time.Hour), true),
		},
	}

	_, err := s.service.Run(context.Background(), Input{
		User:    user.User{ID: USER_ID},
		Title:   "Standup",
		Date:    Now,
		StartAt: c.NewOptional(Now.Add(90*time.Minute), true),
		EndAt:   c.NewOptional(Now.Add(3*time.Hour), true),
	})

	var conflictErr *task.ConflictError
	s.Require().ErrorAs(err, &conflictErr)
	s.Equal(task.ID(1), conflictErr.ConflictingID)
	s.Equal("Existing meeting", conflictErr.ConflictingTitle)
	s.False(s.unitOfWork.Context.WasCommitCalled)
	s.Empty(s.scheduler.Armed)
}

func (s *testSuite) TestBackToBackSlotIsNotConflict() {
	s.unitOfWork.Tasks().Tasks = []task.Task{
		{
			ID:        task.ID(1),
			CreatedBy: USER_ID,
			StartAt:   c.NewOptional(Now.Add(time.Hour), true),
			EndAt:     c.NewOptional(Now.Add(2*time.Hour), true),
		},
	}

	_, err := s.service.Run(context.Background(), Input{
		User:    user.User{ID: USER_ID},
		Title:   "Standup",
		Date:    Now,
		StartAt: c.NewOptional(Now.Add(2*time.Hour), true),
		EndAt:   c.NewOptional(Now.Add(3*time.Hour), true),
	})

	s.Nil(err)
	s.True(s.unitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestSchedulerErrorDoesNotFailCreation() {
	s.scheduler.Error = reminder.ErrSchedulerStopped

	result, err := s.service.Run(context.Background(), Input{
		User:    user.User{ID: USER_ID},
		Title:   "Standup",
		Date:    Now,
		StartAt: c.NewOptional(Now.Add(time.Hour), true),
		EndAt:   c.NewOptional(Now.Add(2*time.Hour), true),
	})

	s.Nil(err)
	s.NotZero(result.Task.ID)
	s.True(s.unitOfWork.Context.WasCommitCalled)
	s.Equal(1, s.logger.CountByLevel(logging.ERROR))
}
