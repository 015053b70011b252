package listusertasks

import (
	"context"
	"net/http"
	"net/http/httptest"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	service "taskflow/internal/core/services/list_user_tasks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var Tasks []task.Task = []task.Task{
	{
		ID:        task.ID(1),
		CreatedBy: user.ID(1),
		Title:     "Write report",
		Date:      time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC),
		StartAt:   c.NewOptional(time.Date(2020, 6, 6, 14, 0, 0, 0, time.UTC), true),
		EndAt:     c.NewOptional(time.Date(2020, 6, 6, 15, 0, 0, 0, time.UTC), true),
		Priority:  task.PriorityHigh,
		Status:    task.StatusTodo,
		CreatedAt: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:        task.ID(2),
		CreatedBy: user.ID(1),
		Title:     "Buy groceries",
		Date:      time.Date(2020, 6, 7, 0, 0, 0, 0, time.UTC),
		Priority:  task.PriorityLow,
		Status:    task.StatusCompleted,
		CreatedAt: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2020, 6, 2, 0, 0, 0, 0, time.UTC),
	},
}

type stubService struct {
	tasks      []task.Task
	totalCount uint
	err        error
	input      *service.Input
}

func newStubService() *stubService {
	return &stubService{
		tasks:      Tasks,
		totalCount: uint(len(Tasks)),
	}
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Tasks = s.tasks
	result.TotalCount = s.totalCount
	return result, nil
}

func TestListUserTasksHandler(t *testing.T) {
	cases := []struct {
		url            string
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			url:            "/tasks",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{},
		},
		{
			url:            "/tasks?date=2020-06-06",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				DateEquals: c.NewOptional(time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC), true),
			},
		},
		{
			url:            "/tasks?date=06/06/2020",
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			url:            "/tasks?order_by=date_asc",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{OrderBy: task.OrderByDateAsc},
		},
		{
			url:            "/tasks?order_by=date_desc",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{OrderBy: task.OrderByDateDesc},
		},
		{
			url:            "/tasks?order_by=start_at_asc",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{OrderBy: task.OrderByStartAtAsc},
		},
		{
			url:            "/tasks?order_by=asd",
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			url:            "/tasks?limit=20",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{Limit: c.NewOptional[uint](20, true)},
		},
		{
			url:            "/tasks?limit=aaaa",
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			url:            "/tasks?offset=40",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{Offset: 40},
		},
		{
			url:            "/tasks?offset=asd",
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			url:            "/tasks?date=2020-06-06&order_by=start_at_asc&limit=20&offset=40",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				DateEquals: c.NewOptional(time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC), true),
				OrderBy:    task.OrderByStartAtAsc,
				Limit:      c.NewOptional[uint](20, true),
				Offset:     40,
			},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.url, func(t *testing.T) {
			stub := newStubService()
			handler := New(stub)

			req, err := http.NewRequest("GET", testcase.url, nil)
			require.NoError(t, err)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
			if testcase.expectedInput == nil {
				assert.Nil(t, stub.input)
			} else {
				require.NotNil(t, stub.input)
				assert.Equal(t, *testcase.expectedInput, *stub.input)
			}
		})
	}
}

func TestListUserTasksHandlerUnauthenticated(t *testing.T) {
	stub := newStubService()
	stub.err = user.ErrUserDoesNotExist
	handler := New(stub)

	req, err := http.NewRequest("GET", "/tasks", nil)
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
