package createtask

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	service "taskflow/internal/core/services/create_task"
	"taskflow/internal/http/handlers/response"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
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
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
}

type Result struct {
	Task response.Task `json:"task"`
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
	priority, err := task.ParsePriority(input.Priority)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := task.ParseStatus(input.Status)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	var startAt, endAt c.Optional[time.Time]
	if input.StartAt != nil {
		startAt = c.NewOptional((*input.StartAt).UTC(), true)
	}
	if input.EndAt != nil {
		endAt = c.NewOptional((*input.EndAt).UTC(), true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Title:       input.Title,
			Description: input.Description,
			Date:        date,
			StartAt:     startAt,
			EndAt:       endAt,
			Priority:    priority,
			Status:      status,
		},
	)
	if err != nil {
		var conflictErr *task.ConflictError
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, task.ErrInvalidInterval):
			response.RenderError(rw, "End time must be after start time", http.StatusBadRequest)
		case errors.As(err, &conflictErr):
			response.RenderError(rw, conflictErr.Error(), http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respTask := response.Task{}
	respTask.FromDomainTask(result.Task)
	response.Render(rw, Result{Task: respTask}, http.StatusCreated)
}
