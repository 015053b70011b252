package gettask

import (
	"context"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"taskflow/internal/core/services/auth"
)

type Input struct {
	User   user.User
	TaskID task.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Task task.Task
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
	t, err := s.taskRepository.GetByID(ctx, input.TaskID)
	if err != nil {
		if err != task.ErrTaskDoesNotExist {
			logging.Error(ctx, s.log, err, logging.Entry("taskID", input.TaskID))
		}
		return result, err
	}
	if t.CreatedBy != input.User.ID {
		return result, task.ErrTaskPermission
	}
	return Result{Task: t}, nil
}
