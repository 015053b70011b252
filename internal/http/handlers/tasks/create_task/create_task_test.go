package createtask

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	service "taskflow/internal/core/services/create_task"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	task  task.Task
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Task = s.task
	return result, nil
}

func newStubService() *stubService {
	return &stubService{
		task: task.Task{
			ID:        task.ID(1),
			CreatedBy: user.ID(1),
			Title:     "Write report",
			Date:      time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC),
			Priority:  task.PriorityMedium,
			Status:    task.StatusTodo,
			CreatedAt: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestCreateTaskHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceError   error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "untimed task",
			body:           `{"title": "Write report", "date": "2020-06-06"}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Title:    "Write report",
				Date:     time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC),
				Priority: task.PriorityMedium,
				Status:   task.StatusTodo,
			},
		},
		{
			id: "timed task",
			body: `{
				"title": "Write report",
				"date": "2020-06-06",
				"start_at": "2020-06-06T14:00:00Z",
				"end_at": "2020-06-06T15:00:00Z",
				"priority": "high",
				"status": "in-progress"
			}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Title:    "Write report",
				Date:     time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC),
				StartAt:  c.NewOptional(time.Date(2020, 6, 6, 14, 0, 0, 0, time.UTC), true),
				EndAt:    c.NewOptional(time.Date(2020, 6, 6, 15, 0, 0, 0, time.UTC), true),
				Priority: task.PriorityHigh,
				Status:   task.StatusInProgress,
			},
		},
		{
			id:             "start time converted to UTC",
			body:           `{"title": "t", "date": "2020-06-06", "start_at": "2020-06-06T16:00:00+02:00", "end_at": "2020-06-06T17:00:00+02:00"}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Title:    "t",
				Date:     time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC),
				StartAt:  c.NewOptional(time.Date(2020, 6, 6, 14, 0, 0, 0, time.UTC), true),
				EndAt:    c.NewOptional(time.Date(2020, 6, 6, 15, 0, 0, 0, time.UTC), true),
				Priority: task.PriorityMedium,
				Status:   task.StatusTodo,
			},
		},
		{
			id:             "missing title",
			body:           `{"date": "2020-06-06"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid date",
			body:           `{"title": "t", "date": "06/06/2020"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid priority",
			body:           `{"title": "t", "date": "2020-06-06", "priority": "urgent"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid json",
			body:           `{"title": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "inverted interval",
			body:           `{"title": "t", "date": "2020-06-06"}`,
			serviceError:   task.ErrInvalidInterval,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "conflicting slot",
			body:           `{"title": "t", "date": "2020-06-06"}`,
			serviceError:   &task.ConflictError{ConflictingID: 2, ConflictingTitle: "Standup"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "unauthenticated",
			body:           `{"title": "t", "date": "2020-06-06"}`,
			serviceError:   user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := newStubService()
			stub.err = testcase.serviceError
			handler := New(stub)

			req, err := http.NewRequest("POST", "/tasks", strings.NewReader(testcase.body))
			require.NoError(t, err)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput != nil {
				require.NotNil(t, stub.input)
				assert.Equal(t, *testcase.expectedInput, *stub.input)
			}
		})
	}
}

func TestCreateTaskHandlerConflictMessage(t *testing.T) {
	stub := newStubService()
	stub.err = &task.ConflictError{ConflictingID: 2, ConflictingTitle: "Standup"}
	handler := New(stub)

	req, err := http.NewRequest("POST", "/tasks", strings.NewReader(`{"title": "t", "date": "2020-06-06"}`))
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "overlaps")
	assert.Contains(t, recorder.Body.String(), "Standup")
}

func TestCreateTaskHandlerInvalidIntervalMessage(t *testing.T) {
	stub := newStubService()
	stub.err = task.ErrInvalidInterval
	handler := New(stub)

	req, err := http.NewRequest("POST", "/tasks", strings.NewReader(`{"title": "t", "date": "2020-06-06"}`))
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "End time must be after start time")
}
