package updatetask

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
	User                user.User
	TaskID              task.ID
	DoTitleUpdate       bool
	Title               string
	DoDescriptionUpdate bool
	Description         string
	DoDateUpdate        bool
	Date                time.Time
	DoStartAtUpdate     bool
	StartAt             c.Optional[time.Time]
	DoEndAtUpdate       bool
	EndAt               c.Optional[time.Time]
	DoPriorityUpdate    bool
	Priority            task.Priority
	DoStatusUpdate      bool
	Status              task.Status
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
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
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	current, err := uow.Tasks().GetByID(ctx, input.TaskID)
	if err != nil {
		if err != task.ErrTaskDoesNotExist {
			logging.Error(ctx, s.log, err, logging.Entry("taskID", input.TaskID))
		}
		return result, err
	}
	if current.CreatedBy != input.User.ID {
		return result, task.ErrTaskPermission
	}

	startAt, endAt := resultingSlot(current, input)
	if startAt.IsPresent != endAt.IsPresent {
		return result, task.ErrInvalidInterval
	}

	if startAt.IsPresent && (input.DoStartAtUpdate || input.DoEndAtUpdate) {
		candidate, err := task.NewInterval(startAt.Value, endAt.Value)
		if err != nil {
			return result, err
		}
		if err := uow.Tasks().LockUser(ctx, input.User.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
			return result, err
		}
		if err := s.checkConflict(ctx, uow, input, candidate); err != nil {
			return result, err
		}
	}

	updatedTask, err := uow.Tasks().Update(ctx, task.UpdateInput{
		ID:                  input.TaskID,
		DoTitleUpdate:       input.DoTitleUpdate,
		Title:               input.Title,
		DoDescriptionUpdate: input.DoDescriptionUpdate,
		Description:         input.Description,
		DoDateUpdate:        input.DoDateUpdate,
		Date:                input.Date,
		DoStartAtUpdate:     input.DoStartAtUpdate,
		StartAt:             input.StartAt,
		DoEndAtUpdate:       input.DoEndAtUpdate,
		EndAt:               input.EndAt,
		DoPriorityUpdate:    input.DoPriorityUpdate,
		Priority:            input.Priority,
		DoStatusUpdate:      input.DoStatusUpdate,
		Status:              input.Status,
		UpdatedAt:           s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	// Replace leaves the pending handle alone when the fire time did not
	// change, so calling it on every start time update is safe.
	if input.DoStartAtUpdate {
		if err := s.scheduler.Replace(ctx, updatedTask); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("taskID", updatedTask.ID))
		}
	}

	s.log.Info(ctx, "Task successfully updated.", logging.Entry("taskID", updatedTask.ID))
	return Result{Task: updatedTask}, nil
}

func (s *service) checkConflict(
	ctx context.Context,
	uow uow.Context,
	input Input,
	candidate task.Interval,
) error {
	existing, err := uow.Tasks().Read(ctx, task.ReadOptions{
		CreatedByEquals: c.NewOptional(input.User.ID, true),
		OverlapsWith:    c.NewOptional(candidate, true),
		IDNotEquals:     c.NewOptional(input.TaskID, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return err
	}
	if conflicting, found := task.FindConflict(existing, candidate, input.TaskID); found {
		return &task.ConflictError{
			ConflictingID:    conflicting.ID,
			ConflictingTitle: conflicting.Title,
		}
	}
	return nil
}

// resultingSlot applies the requested time updates on top of the stored
// task so the combined slot can be validated before anything is written.
func resultingSlot(current task.Task, input Input) (startAt, endAt c.Optional[time.Time]) {
	startAt = current.StartAt
	endAt = current.EndAt
	if input.DoStartAtUpdate {
		startAt = input.StartAt
	}
	if input.DoEndAtUpdate {
		endAt = input.EndAt
	}
	return startAt, endAt
}
