package updatetask

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

const (
	USER_ID       = user.ID(42)
	OTHER_USER_ID = user.ID(111)
	TASK_ID       = task.ID(1)
	OTHER_TASK_ID = task.ID(2)
)

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
	suite.unitOfWork.Tasks().Tasks = []task.Task{
		{
			ID:        TASK_ID,
			CreatedBy: USER_ID,
			Title:     "Standup",
			Date:      Now,
			StartAt:   c.NewOptional(Now.Add(time.Hour), true),
			EndAt:     c.NewOptional(Now.Add(2*time.Hour), true),
		},
		{
			ID:        OTHER_TASK_ID,
			CreatedBy: USER_ID,
			Title:     "Planning",
			Date:      Now,
			StartAt:   c.NewOptional(Now.Add(4*time.Hour), true),
			EndAt:     c.NewOptional(Now.Add(5*time.Hour), true),
		},
	}
	suite.scheduler = reminder.NewTestScheduler()
	suite.service = New(
		suite.logger,
		suite.unitOfWork,
		suite.scheduler,
		func() time.Time { return Now },
	)
}

func TestUpdateTaskService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestTitleUpdate() {
	result, err := s.service.Run(context.Background(), Input{
		User:          user.User{ID: USER_ID},
		TaskID:        TASK_ID,
		DoTitleUpdate: true,
		Title:         "Daily standup",
	})

	s.Nil(err)
	s.Equal("Daily standup", result.Task.Title)
	s.True(s.unitOfWork.Context.WasCommitCalled)
	s.Empty(s.unitOfWork.Tasks().LockedUsers)
	s.Empty(s.scheduler.Replaced)
}

func (s *testSuite) TestStartAtUpdateReplacesReminder() {
	newStart := Now.Add(90 * time.Minute)
	result, err := s.service.Run(context.Background(), Input{
		User:            user.User{ID: USER_ID},
		TaskID:          TASK_ID,
		DoStartAtUpdate: true,
		StartAt:         c.NewOptional(newStart, true),
		DoEndAtUpdate:   true,
		EndAt:           c.NewOptional(Now.Add(3*time.Hour), true),
	})

	s.Nil(err)
	s.Equal(newStart, result.Task.StartAt.Value)
	s.Equal([]user.ID{USER_ID}, s.unitOfWork.Tasks().LockedUsers)
	s.Require().Len(s.scheduler.Replaced, 1)
	s.Equal(TASK_ID, s.scheduler.Replaced[0].ID)
}

func (s *testSuite) TestOwnSlotIsNotConflict() {
	// Shifting the end inside the task's own current slot must not
	// trip the overlap check against itself.
	_, err := s.service.Run(context.Background(), Input{
		User:          user.User{ID: USER_ID},
		TaskID:        TASK_ID,
		DoEndAtUpdate: true,
		EndAt:         c.NewOptional(Now.Add(90*time.Minute), true),
	})

	s.Nil(err)
	s.True(s.unitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestConflictWithAnotherTask() {
	_, err := s.service.Run(context.Background(), Input{
		User:            user.User{ID: USER_ID},
		TaskID:          TASK_ID,
		DoStartAtUpdate: true,
		StartAt:         c.NewOptional(Now.Add(270*time.Minute), true),
		DoEndAtUpdate:   true,
		EndAt:           c.NewOptional(Now.Add(6*time.Hour), true),
	})

	var conflictErr *task.ConflictError
	s.Require().ErrorAs(err, &conflictErr)
	s.Equal(OTHER_TASK_ID, conflictErr.ConflictingID)
	s.False(s.unitOfWork.Context.WasCommitCalled)
	s.Empty(s.scheduler.Replaced)
}

func (s *testSuite) TestInvalidInterval() {
	_, err := s.service.Run(context.Background(), Input{
		User:            user.User{ID: USER_ID},
		TaskID:          TASK_ID,
		DoStartAtUpdate: true,
		StartAt:         c.NewOptional(Now.Add(3*time.Hour), true),
	})

	s.ErrorIs(err, task.ErrInvalidInterval)
	s.False(s.unitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestClearingSlotStillReplacesReminder() {
	_, err := s.service.Run(context.Background(), Input{
		User:            user.User{ID: USER_ID},
		TaskID:          TASK_ID,
		DoStartAtUpdate: true,
		StartAt:         c.Optional[time.Time]{},
		DoEndAtUpdate:   true,
		EndAt:           c.Optional[time.Time]{},
	})

	s.Nil(err)
	s.Require().Len(s.scheduler.Replaced, 1)
	s.False(s.scheduler.Replaced[0].StartAt.IsPresent)
}

func (s *testSuite) TestTaskDoesNotExist() {
	_, err := s.service.Run(context.Background(), Input{
		User:          user.User{ID: USER_ID},
		TaskID:        task.ID(999),
		DoTitleUpdate: true,
		Title:         "Nope",
	})

	s.ErrorIs(err, task.ErrTaskDoesNotExist)
}

func (s *testSuite) TestAnotherUsersTask() {
	_, err := s.service.Run(context.Background(), Input{
		User:          user.User{ID: OTHER_USER_ID},
		TaskID:        TASK_ID,
		DoTitleUpdate: true,
		Title:         "Hijack",
	})

	s.ErrorIs(err, task.ErrTaskPermission)
	s.False(s.unitOfWork.Context.WasCommitCalled)
}
