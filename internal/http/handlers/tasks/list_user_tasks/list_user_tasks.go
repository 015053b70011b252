package listusertasks

import (
	"errors"
	"net/http"
	"strconv"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	service "taskflow/internal/core/services/list_user_tasks"
	"taskflow/internal/http/handlers/response"
	"time"
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
	Tasks      []response.Task `json:"tasks"`
	TotalCount uint            `json:"total_count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	dateEquals, err := parseDate(rawDate)
	if err != nil {
		response.RenderError(rw, "invalid date query parameter", http.StatusBadRequest)
		return
	}

	rawOrderBy := r.URL.Query().Get("order_by")
	orderBy, err := task.ParseOrderBy(rawOrderBy)
	if err != nil {
		response.RenderError(rw, "invalid order_by query parameter", http.StatusBadRequest)
		return
	}

	rawLimit := r.URL.Query().Get("limit")
	limit, err := parseLimit(rawLimit)
	if err != nil {
		response.RenderError(rw, "invalid limit query parameter", http.StatusBadRequest)
		return
	}

	rawOffset := r.URL.Query().Get("offset")
	offset, err := parseOffset(rawOffset)
	if err != nil {
		response.RenderError(rw, "invalid offset query parameter", http.StatusBadRequest)
		return
	}

	input := service.Input{
		DateEquals: dateEquals,
		OrderBy:    orderBy,
		Limit:      limit,
		Offset:     offset,
	}
	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(
		rw,
		Result{Tasks: response.FromDomainTasks(result.Tasks), TotalCount: result.TotalCount},
		http.StatusOK,
	)
}

func parseDate(raw string) (date c.Optional[time.Time], err error) {
	if raw == "" {
		return date, nil
	}
	parsed, err := time.ParseInLocation(response.DATE_LAYOUT, raw, time.UTC)
	if err != nil {
		return date, err
	}
	return c.NewOptional(parsed, true), nil
}

func parseLimit(raw string) (limit c.Optional[uint], err error) {
	if raw == "" {
		return limit, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return limit, err
	}
	return c.NewOptional(uint(parsed), true), nil
}

func parseOffset(raw string) (offset uint, err error) {
	if raw == "" {
		return offset, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return offset, err
	}
	return uint(parsed), nil
}
