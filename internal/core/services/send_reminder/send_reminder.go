package sendreminder

import (
	"context"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/services"
	"time"
)

type Input struct {
	TaskID task.ID
	// StartAt is the task's start time captured when the reminder fired.
	// If the stored task has moved since, the message is stale.
	StartAt time.Time
}

type Result struct {
	Sent bool
	Task task.Task
}

type service struct {
	log            logging.Logger
	taskRepository task.TaskRepository
	sender         reminder.Sender
}

func New(
	log logging.Logger,
	taskRepository task.TaskRepository,
	sender reminder.Sender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if taskRepository == nil {
		panic(e.NewNilArgumentError("taskRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{log: log, taskRepository: taskRepository, sender: sender}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	t, err := s.taskRepository.GetByID(ctx, input.TaskID)
	if err == task.ErrTaskDoesNotExist {
		s.log.Info(
			ctx,
			"Reminder is skipped, task no longer exists.",
			logging.Entry("taskID", input.TaskID),
		)
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", input.TaskID))
		return result, err
	}

	if !t.StartAt.IsPresent || !t.StartAt.Value.Equal(input.StartAt) {
		s.log.Info(
			ctx,
			"Reminder is skipped, task start time has changed.",
			logging.Entry("taskID", input.TaskID),
			logging.Entry("startAt", input.StartAt),
		)
		return Result{Task: t}, nil
	}

	if err := s.sender.SendReminder(ctx, t); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", input.TaskID))
		return Result{Task: t}, err
	}

	s.log.Info(ctx, "Reminder successfully sent.", logging.Entry("taskID", input.TaskID))
	return Result{Sent: true, Task: t}, nil
}
