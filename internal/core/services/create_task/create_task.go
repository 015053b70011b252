package createtask

import (
	"context"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	uow "taskflow/internal/core/domain/unit_of_work"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"taskflow/internal/core/services/auth"
	"time"
)

type Input struct {
	User        user.User
	Title       string
	Description string
	Date        time.Time
	StartAt     c.Optional[time.Time]
	EndAt       c.Optional[time.Time]
	Priority    task.Priority
	Status      task.Status
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

// Interval validates the candidate time slot and returns it when one is
// set. Start and end must be set together and form a non-empty half-open
// interval.
func (i Input) Interval() (ival c.Optional[task.Interval], err error) {
	if i.StartAt.IsPresent != i.EndAt.IsPresent {
		return ival, task.ErrInvalidInterval
	}
	if !i.StartAt.IsPresent {
		return ival, nil
	}
	candidate, err := task.NewInterval(i.StartAt.Value, i.EndAt.Value)
	if err != nil {
		return ival, err
	}
	return c.NewOptional(candidate, true), nil
}

type Result struct {
	Task task.Task
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
	now func() time.Time,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	candidate, err := input.Interval()
	if err != nil {
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	if candidate.IsPresent {
		// Serialize the check and the write per user, otherwise two
		// concurrent creations could both pass the overlap check.
		if err := uow.Tasks().LockUser(ctx, input.User.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
			return result, err
		}
		if err := s.checkConflict(ctx, uow, input.User.ID, candidate.Value); err != nil {
			return result, err
		}
	}

	createdTask, err := uow.Tasks().Create(ctx, task.CreateInput{
		CreatedBy:   input.User.ID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		Priority:    input.Priority,
		Status:      input.Status,
		CreatedAt:   s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	// The reminder is best effort: the task is already saved, so an
	// arming failure is logged and never surfaced to the caller.
	if err := s.scheduler.Arm(ctx, createdTask); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("taskID", createdTask.ID))
	}

	s.log.Info(ctx, "Task successfully created.", logging.Entry("taskID", createdTask.ID))
	return Result{Task: createdTask}, nil
}

func (s *service) checkConflict(
	ctx context.Context,
	uow uow.Context,
	userID user.ID,
	candidate task.Interval,
) error {
	existing, err := uow.Tasks().Read(ctx, task.ReadOptions{
		CreatedByEquals: c.NewOptional(userID, true),
		OverlapsWith:    c.NewOptional(candidate, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", userID))
		return err
	}
	if conflicting, found := task.FindConflict(existing, candidate, task.ID(0)); found {
		return &task.ConflictError{
			ConflictingID:    conflicting.ID,
			ConflictingTitle: conflicting.Title,
		}
	}
	return nil
}
