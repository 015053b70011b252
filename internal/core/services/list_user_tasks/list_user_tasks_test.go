package listusertasks

import (
	"context"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID(42)

var (
	Today    time.Time = time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC)
	Tomorrow time.Time = Today.AddDate(0, 0, 1)
)

type testSuite struct {
	suite.Suite
	logger         *logging.FakeLogger
	taskRepository *task.FakeTaskRepository
	service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.taskRepository = task.NewFakeTaskRepository()
	suite.taskRepository.Tasks = []task.Task{
		{ID: task.ID(1), CreatedBy: USER_ID, Title: "Standup", Date: Today},
		{ID: task.ID(2), CreatedBy: USER_ID, Title: "Planning", Date: Tomorrow},
		{ID: task.ID(3), CreatedBy: user.ID(111), Title: "Not mine", Date: Today},
	}
	suite.service = New(suite.logger, suite.taskRepository)
}

func TestListUserTasksService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestListsOnlyOwnTasks() {
	result, err := s.service.Run(context.Background(), Input{User: user.User{ID: USER_ID}})

	s.Nil(err)
	s.Equal(uint(2), result.TotalCount)
	s.Require().Len(result.Tasks, 2)
	for _, t := range result.Tasks {
		s.Equal(USER_ID, t.CreatedBy)
	}
}

func (s *testSuite) TestFilterByDate() {
	result, err := s.service.Run(context.Background(), Input{
		User:       user.User{ID: USER_ID},
		DateEquals: c.NewOptional(Tomorrow, true),
	})

	s.Nil(err)
	s.Equal(uint(1), result.TotalCount)
	s.Require().Len(result.Tasks, 1)
	s.Equal("Planning", result.Tasks[0].Title)
}

func (s *testSuite) TestTotalCountIgnoresPagination() {
	result, err := s.service.Run(context.Background(), Input{
		User:  user.User{ID: USER_ID},
		Limit: c.NewOptional(uint(1), true),
	})

	s.Nil(err)
	s.Equal(uint(2), result.TotalCount)
	s.Len(result.Tasks, 1)
}
