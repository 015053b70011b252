package gettask

import (
	"errors"
	"net/http"
	"strconv"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	service "taskflow/internal/core/services/get_task"
	"taskflow/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
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

type Result struct {
	Task response.Task `json:"task"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawTaskID := chi.URLParam(r, "taskID")
	taskID, err := strconv.ParseInt(rawTaskID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid task ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{TaskID: task.ID(taskID)},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, task.ErrTaskDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, task.ErrTaskPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respTask := response.Task{}
	respTask.FromDomainTask(result.Task)
	response.Render(rw, Result{Task: respTask}, http.StatusOK)
}
