package remindersender

import (
	"context"
	"errors"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"testing"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailSender struct {
	sentTo    []c.Email
	sendError error
}

func (s *fakeEmailSender) SendTaskReminder(ctx context.Context, to c.Email, t task.Task) error {
	if s.sendError != nil {
		return s.sendError
	}
	s.sentTo = append(s.sentTo, to)
	return nil
}

func newTestSender(t *testing.T) (*Sender, *fakeEmailSender, *user.FakeUserRepository) {
	t.Helper()
	logger := logging.NewFakeLogger()
	userRepository := user.NewFakeUserRepository()
	userRepository.Users = []user.User{
		{ID: user.ID(42), Name: "Alice", Email: c.Email("alice@test.com")},
	}
	emailSender := &fakeEmailSender{}
	sseServer := sse.New()
	t.Cleanup(sseServer.Close)
	return New(logger, userRepository, emailSender, NewInternal(sseServer)), emailSender, userRepository
}

func testTask() task.Task {
	startAt := time.Date(2020, 6, 6, 14, 0, 0, 0, time.UTC)
	return task.Task{
		ID:        task.ID(7),
		CreatedBy: user.ID(42),
		Title:     "Standup",
		StartAt:   c.NewOptional(startAt, true),
		EndAt:     c.NewOptional(startAt.Add(time.Hour), true),
	}
}

func TestSendsEmailToTaskOwner(t *testing.T) {
	sender, emailSender, _ := newTestSender(t)

	err := sender.SendReminder(context.Background(), testTask())

	require.NoError(t, err)
	assert.Equal(t, []c.Email{c.Email("alice@test.com")}, emailSender.sentTo)
}

func TestOwnerLookupFailure(t *testing.T) {
	sender, emailSender, userRepository := newTestSender(t)
	userRepository.GetError = errors.New("db is down")

	err := sender.SendReminder(context.Background(), testTask())

	require.Error(t, err)
	assert.Empty(t, emailSender.sentTo)
}

func TestEmailFailure(t *testing.T) {
	sender, emailSender, _ := newTestSender(t)
	emailSender.sendError = errors.New("ses is down")

	err := sender.SendReminder(context.Background(), testTask())

	require.Error(t, err)
}
