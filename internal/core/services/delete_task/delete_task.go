package deletetask

import (
	"context"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	uow "taskflow/internal/core/domain/unit_of_work"
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

type Result struct{}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	return &service{log: log, unitOfWork: unitOfWork, scheduler: scheduler}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	t, err := uow.Tasks().GetByID(ctx, input.TaskID)
	if err != nil {
		if err != task.ErrTaskDoesNotExist {
			logging.Error(ctx, s.log, err, logging.Entry("taskID", input.TaskID))
		}
		return result, err
	}
	if t.CreatedBy != input.User.ID {
		return result, task.ErrTaskPermission
	}

	if err := uow.Tasks().Delete(ctx, input.TaskID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", input.TaskID))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", input.TaskID))
		return result, err
	}

	s.scheduler.Cancel(ctx, input.TaskID)
	s.log.Info(ctx, "Task successfully deleted.", logging.Entry("taskID", input.TaskID))
	return result, nil
}
