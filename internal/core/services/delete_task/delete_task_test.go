package deletetask

import (
	"context"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	uow "taskflow/internal/core/domain/unit_of_work"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID = user.ID(42)
	TASK_ID = task.ID(7)
)

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
		{ID: TASK_ID, CreatedBy: USER_ID, Title: "Standup"},
	}
	suite.scheduler = reminder.NewTestScheduler()
	suite.service = New(suite.logger, suite.unitOfWork, suite.scheduler)
}

func TestDeleteTaskService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	_, err := s.service.Run(context.Background(), Input{
		User:   user.User{ID: USER_ID},
		TaskID: TASK_ID,
	})

	s.Nil(err)
	s.Empty(s.unitOfWork.Tasks().Tasks)
	s.True(s.unitOfWork.Context.WasCommitCalled)
	s.Equal([]task.ID{TASK_ID}, s.scheduler.Cancelled)
}

func (s *testSuite) TestTaskDoesNotExist() {
	_, err := s.service.Run(context.Background(), Input{
		User:   user.User{ID: USER_ID},
		TaskID: task.ID(999),
	})

	s.ErrorIs(err, task.ErrTaskDoesNotExist)
	s.Empty(s.scheduler.Cancelled)
}

func (s *testSuite) TestAnotherUsersTask() {
	_, err := s.service.Run(context.Background(), Input{
		User:   user.User{ID: user.ID(111)},
		TaskID: TASK_ID,
	})

	s.ErrorIs(err, task.ErrTaskPermission)
	s.Len(s.unitOfWork.Tasks().Tasks, 1)
	s.Empty(s.scheduler.Cancelled)
}
