package remindersender

import (
	"context"
	"encoding/json"
	"fmt"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"time"

	"github.com/r3labs/sse/v2"
)

// StreamID names the per-user SSE stream fired reminders are published to.
func StreamID(userID user.ID) string {
	return fmt.Sprintf("user-%d", userID)
}

type firedReminderEvent struct {
	TaskID  int64     `json:"task_id"`
	Title   string    `json:"title"`
	StartAt time.Time `json:"start_at"`
}

// InternalSender pushes fired reminders to connected browsers over SSE.
type InternalSender struct {
	sseServer *sse.Server
}

func NewInternal(sseServer *sse.Server) *InternalSender {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &InternalSender{sseServer: sseServer}
}

func (s *InternalSender) SendReminder(ctx context.Context, t task.Task) error {
	payload, err := json.Marshal(firedReminderEvent{
		TaskID:  int64(t.ID),
		Title:   t.Title,
		StartAt: t.StartAt.Value,
	})
	if err != nil {
		return err
	}
	s.sseServer.Publish(StreamID(t.CreatedBy), &sse.Event{
		Event: []byte("reminder"),
		Data:  payload,
	})
	return nil
}
