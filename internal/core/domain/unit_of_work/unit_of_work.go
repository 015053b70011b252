package uow

import (
	"context"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Sessions() user.SessionRepository
	Tasks() task.TaskRepository
	Meetings() meeting.MeetingRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
