package uow

import (
	"context"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	TaskRepository    *task.FakeTaskRepository
	MeetingRepository *meeting.FakeMeetingRepository
	WasRollbackCalled bool
	WasCommitCalled   bool
}

func NewFakeUnitOfWorkContext() *FakeUnitOfWorkContext {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWorkContext{
		UserRepository:    userRepository,
		SessionRepository: user.NewFakeSessionRepository(userRepository),
		TaskRepository:    task.NewFakeTaskRepository(),
		MeetingRepository: meeting.NewFakeMeetingRepository(),
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Sessions() user.SessionRepository {
	return c.SessionRepository
}

func (c *FakeUnitOfWorkContext) Tasks() task.TaskRepository {
	return c.TaskRepository
}

func (c *FakeUnitOfWorkContext) Meetings() meeting.MeetingRepository {
	return c.MeetingRepository
}

type FakeUnitOfWork struct {
	Context    *FakeUnitOfWorkContext
	BeginError error
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{Context: NewFakeUnitOfWorkContext()}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError != nil {
		return nil, u.BeginError
	}
	return u.Context, nil
}

func (u *FakeUnitOfWork) Tasks() *task.FakeTaskRepository {
	return u.Context.TaskRepository
}

func (u *FakeUnitOfWork) Meetings() *meeting.FakeMeetingRepository {
	return u.Context.MeetingRepository
}
