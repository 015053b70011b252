package createmeeting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	service "taskflow/internal/core/services/create_meeting"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	meeting meeting.Meeting
	err     error
	input   *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Meeting = s.meeting
	return result, nil
}

func newStubService() *stubService {
	return &stubService{
		meeting: meeting.Meeting{
			ID:          meeting.ID(1),
			Organizer:   user.ID(1),
			Title:       "Planning",
			Date:        time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC),
			StartAt:     time.Date(2020, 6, 6, 14, 0, 0, 0, time.UTC),
			EndAt:       time.Date(2020, 6, 6, 15, 0, 0, 0, time.UTC),
			MeetingType: meeting.TypeOnline,
			CreatedAt:   time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestCreateMeetingHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceError   error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id: "online meeting",
			body: `{
				"title": "Planning",
				"date": "2020-06-06",
				"start_at": "2020-06-06T14:00:00Z",
				"end_at": "2020-06-06T15:00:00Z",
				"attendees": ["alice@test.com", "Bob@Test.com"]
			}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Title:       "Planning",
				Date:        time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC),
				StartAt:     time.Date(2020, 6, 6, 14, 0, 0, 0, time.UTC),
				EndAt:       time.Date(2020, 6, 6, 15, 0, 0, 0, time.UTC),
				MeetingType: meeting.TypeOnline,
				Attendees:   []c.Email{"alice@test.com", "bob@test.com"},
			},
		},
		{
			id: "in-person meeting",
			body: `{
				"title": "Planning",
				"date": "2020-06-06",
				"start_at": "2020-06-06T14:00:00Z",
				"end_at": "2020-06-06T15:00:00Z",
				"meeting_type": "in-person",
				"location": "Room 4"
			}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Title:       "Planning",
				Date:        time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC),
				StartAt:     time.Date(2020, 6, 6, 14, 0, 0, 0, time.UTC),
				EndAt:       time.Date(2020, 6, 6, 15, 0, 0, 0, time.UTC),
				MeetingType: meeting.TypeInPerson,
				Location:    "Room 4",
				Attendees:   []c.Email{},
			},
		},
		{
			id:             "missing title",
			body:           `{"date": "2020-06-06", "start_at": "2020-06-06T14:00:00Z", "end_at": "2020-06-06T15:00:00Z"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing start and end",
			body:           `{"title": "Planning", "date": "2020-06-06"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid attendee email",
			body:           `{"title": "Planning", "date": "2020-06-06", "start_at": "2020-06-06T14:00:00Z", "end_at": "2020-06-06T15:00:00Z", "attendees": ["not-an-email"]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid meeting type",
			body:           `{"title": "Planning", "date": "2020-06-06", "start_at": "2020-06-06T14:00:00Z", "end_at": "2020-06-06T15:00:00Z", "meeting_type": "offline"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "location required",
			body:           `{"title": "Planning", "date": "2020-06-06", "start_at": "2020-06-06T14:00:00Z", "end_at": "2020-06-06T15:00:00Z", "meeting_type": "in-person"}`,
			serviceError:   meeting.ErrLocationRequired,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "undeliverable attendee",
			body:           `{"title": "Planning", "date": "2020-06-06", "start_at": "2020-06-06T14:00:00Z", "end_at": "2020-06-06T15:00:00Z", "attendees": ["bob@test.com"]}`,
			serviceError:   meeting.ErrInvalidAttendee,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "inverted interval",
			body:           `{"title": "Planning", "date": "2020-06-06", "start_at": "2020-06-06T15:00:00Z", "end_at": "2020-06-06T14:00:00Z"}`,
			serviceError:   task.ErrInvalidInterval,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "conflicting slot",
			body:           `{"title": "Planning", "date": "2020-06-06", "start_at": "2020-06-06T14:00:00Z", "end_at": "2020-06-06T15:00:00Z"}`,
			serviceError:   &meeting.ConflictError{ConflictingID: 2, ConflictingTitle: "Standup"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "unauthenticated",
			body:           `{"title": "Planning", "date": "2020-06-06", "start_at": "2020-06-06T14:00:00Z", "end_at": "2020-06-06T15:00:00Z"}`,
			serviceError:   user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := newStubService()
			stub.err = testcase.serviceError
			handler := New(stub)

			req, err := http.NewRequest("POST", "/meetings", strings.NewReader(testcase.body))
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
