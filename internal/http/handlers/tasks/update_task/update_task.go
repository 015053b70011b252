package updatetask

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	service "taskflow/internal/core/services/update_task"
	"taskflow/internal/http/handlers/response"
	"time"

	"github.com/go-chi/chi/v5"
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

// Absent JSON fields leave the corresponding task fields unchanged. The
// do_start_at_update and do_end_at_update flags distinguish clearing the
// time slot from not touching it.
type Input struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Date            *string    `json:"date"`
	DoStartAtUpdate bool       `json:"do_start_at_update"`
	StartAt         *time.Time `json:"start_at"`
	DoEndAtUpdate   bool       `json:"do_end_at_update"`
	EndAt           *time.Time `json:"end_at"`
	Priority        *string    `json:"priority"`
	Status          *string    `json:"status"`
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
		validation.Field(&i.Title, validation.Length(1, 256)),
		validation.Field(&i.Description, validation.Length(0, 4096)),
		validation.Field(&i.Date, validation.Date(response.DATE_LAYOUT)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawTaskID := chi.URLParam(r, "taskID")
	taskID, err := strconv.ParseInt(rawTaskID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid task ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := service.Input{TaskID: task.ID(taskID)}
	if input.Title != nil {
		serviceInput.DoTitleUpdate = true
		serviceInput.Title = *input.Title
	}
	if input.Description != nil {
		serviceInput.DoDescriptionUpdate = true
		serviceInput.Description = *input.Description
	}
	if input.Date != nil {
		date, err := time.ParseInLocation(response.DATE_LAYOUT, *input.Date, time.UTC)
		if err != nil {
			response.RenderError(rw, "invalid date", http.StatusBadRequest)
			return
		}
		serviceInput.DoDateUpdate = true
		serviceInput.Date = date
	}
	if input.DoStartAtUpdate {
		serviceInput.DoStartAtUpdate = true
		if input.StartAt != nil {
			serviceInput.StartAt = c.NewOptional((*input.StartAt).UTC(), true)
		}
	}
	if input.DoEndAtUpdate {
		serviceInput.DoEndAtUpdate = true
		if input.EndAt != nil {
			serviceInput.EndAt = c.NewOptional((*input.EndAt).UTC(), true)
		}
	}
	if input.Priority != nil {
		priority, err := task.ParsePriority(*input.Priority)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		serviceInput.DoPriorityUpdate = true
		serviceInput.Priority = priority
	}
	if input.Status != nil {
		status, err := task.ParseStatus(*input.Status)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		serviceInput.DoStatusUpdate = true
		serviceInput.Status = status
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		var conflictErr *task.ConflictError
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, task.ErrTaskDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, task.ErrTaskPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
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
	response.Render(rw, Result{Task: respTask}, http.StatusOK)
}
