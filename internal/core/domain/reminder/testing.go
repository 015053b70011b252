package reminder

import (
	"context"
	"sync"
	"taskflow/internal/core/domain/task"
)

type TestScheduler struct {
	Armed     []task.Task
	Cancelled []task.ID
	Replaced  []task.Task
	Error     error
	lock      sync.Mutex
}

func NewTestScheduler() *TestScheduler {
	return &TestScheduler{}
}

func (s *TestScheduler) Arm(ctx context.Context, t task.Task) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Armed = append(s.Armed, t)
	return nil
}

func (s *TestScheduler) Cancel(ctx context.Context, id task.ID) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Cancelled = append(s.Cancelled, id)
}

func (s *TestScheduler) Replace(ctx context.Context, t task.Task) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Replaced = append(s.Replaced, t)
	return nil
}

type TestSender struct {
	Sent      []task.Task
	SendError error
	lock      sync.Mutex
}

func NewTestSender() *TestSender {
	return &TestSender{}
}

func (s *TestSender) SendReminder(ctx context.Context, t task.Task) error {
	if s.SendError != nil {
		return s.SendError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, t)
	return nil
}

func (s *TestSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
