package listusertasks

import (
	"context"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"taskflow/internal/core/services/auth"
	"time"
)

type Input struct {
	User       user.User
	DateEquals c.Optional[time.Time]
	OrderBy    task.OrderBy
	Limit      c.Optional[uint]
	Offset     uint
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Tasks      []task.Task
	TotalCount uint
}

type service struct {
	log            logging.Logger
	taskRepository task.TaskRepository
}

func New(
	log logging.Logger,
	taskRepository task.TaskRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if taskRepository == nil {
		panic(e.NewNilArgumentError("taskRepository"))
	}
	return &service{log: log, taskRepository: taskRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	options := task.ReadOptions{
		CreatedByEquals: c.NewOptional(input.User.ID, true),
		DateEquals:      input.DateEquals,
		OrderBy:         input.OrderBy,
		Limit:           input.Limit,
		Offset:          input.Offset,
	}
	totalCount, err := s.taskRepository.Count(ctx, task.ReadOptions{
		CreatedByEquals: options.CreatedByEquals,
		DateEquals:      options.DateEquals,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	tasks, err := s.taskRepository.Read(ctx, options)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	return Result{Tasks: tasks, TotalCount: totalCount}, nil
}
