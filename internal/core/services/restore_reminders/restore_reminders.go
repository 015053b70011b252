package restorereminders

import (
	"context"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/reminder"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	ArmedCount int
}

// service rebuilds reminder timers from persisted tasks. Handles live only
// in process memory, so every restart loses them; this runs at boot and on
// a periodic sweep.
type service struct {
	log            logging.Logger
	taskRepository task.TaskRepository
	scheduler      reminder.Scheduler
	now            func() time.Time
}

func New(
	log logging.Logger,
	taskRepository task.TaskRepository,
	scheduler reminder.Scheduler,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if taskRepository == nil {
		panic(e.NewNilArgumentError("taskRepository"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		taskRepository: taskRepository,
		scheduler:      scheduler,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	// Tasks whose fire time already passed are not worth restoring, so
	// only tasks starting after now + lead time are read.
	tasks, err := s.taskRepository.Read(ctx, task.ReadOptions{
		StartAtAfter: c.NewOptional(s.now().Add(task.REMINDER_LEAD_TIME), true),
		OrderBy:      task.OrderByStartAtAsc,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	for _, t := range tasks {
		if err := s.scheduler.Arm(ctx, t); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("taskID", t.ID))
			return result, err
		}
		result.ArmedCount++
	}

	if result.ArmedCount > 0 {
		s.log.Info(
			ctx,
			"Reminders successfully restored.",
			logging.Entry("armedCount", result.ArmedCount),
		)
	}
	return result, nil
}
