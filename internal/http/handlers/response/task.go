package response

import (
	"taskflow/internal/core/domain/task"
	"time"
)

const DATE_LAYOUT = "2006-01-02"

type Task struct {
	ID          int64      `json:"id"`
	CreatedBy   int64      `json:"created_by"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) FromDomainTask(dt task.Task) {
	t.ID = int64(dt.ID)
	t.CreatedBy = int64(dt.CreatedBy)
	t.Title = dt.Title
	t.Description = dt.Description
	t.Date = dt.Date.Format(DATE_LAYOUT)
	if dt.StartAt.IsPresent {
		t.StartAt = &dt.StartAt.Value
	}
	if dt.EndAt.IsPresent {
		t.EndAt = &dt.EndAt.Value
	}
	t.Priority = dt.Priority.String()
	t.Status = dt.Status.String()
	t.CreatedAt = dt.CreatedAt
	t.UpdatedAt = dt.UpdatedAt
}

func FromDomainTasks(dts []task.Task) []Task {
	tasks := make([]Task, len(dts))
	for ix, dt := range dts {
		tasks[ix].FromDomainTask(dt)
	}
	return tasks
}
