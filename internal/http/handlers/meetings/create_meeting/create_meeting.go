package createmeeting

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	service "taskflow/internal/core/services/create_meeting"
	"taskflow/internal/http/handlers/response"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	MeetingType string    `json:"meeting_type"`
	Location    string    `json:"location"`
	Attendees   []string  `json:"attendees"`
}

type Result struct {
	Meeting response.Meeting `json:"meeting"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Description, validation.Length(0, 4096)),
		validation.Field(&i.Date, validation.Required, validation.Date(response.DATE_LAYOUT)),
		validation.Field(&i.StartAt, validation.Required),
		validation.Field(&i.EndAt, validation.Required),
		validation.Field(&i.Location, validation.Length(0, 512)),
		validation.Field(&i.Attendees, validation.Length(0, 100), validation.Each(is.Email)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	date, err := time.ParseInLocation(response.DATE_LAYOUT, input.Date, time.UTC)
	if err != nil {
		response.RenderError(rw, "invalid date", http.StatusBadRequest)
		return
	}
	meetingType, err := meeting.ParseType(input.MeetingType)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	attendees := make([]c.Email, 0, len(input.Attendees))
	for _, attendee := range input.Attendees {
		attendees = append(attendees, c.NewEmail(attendee))
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Title:       input.Title,
			Description: input.Description,
			Date:        date,
			StartAt:     input.StartAt.UTC(),
			EndAt:       input.EndAt.UTC(),
			MeetingType: meetingType,
			Location:    input.Location,
			Attendees:   attendees,
		},
	)
	if err != nil {
		var conflictErr *meeting.ConflictError
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, task.ErrInvalidInterval):
			response.RenderError(rw, "End time must be after start time", http.StatusBadRequest)
		case errors.Is(err, meeting.ErrLocationRequired):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, meeting.ErrInvalidAttendee):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.As(err, &conflictErr):
			response.RenderError(rw, conflictErr.Error(), http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respMeeting := response.Meeting{}
	respMeeting.FromDomainMeeting(result.Meeting)
	response.Render(rw, Result{Meeting: respMeeting}, http.StatusCreated)
}
