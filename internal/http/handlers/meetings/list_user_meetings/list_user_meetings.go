package listusermeetings

import (
	"errors"
	"net/http"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	service "taskflow/internal/core/services/list_user_meetings"
	"taskflow/internal/http/handlers/response"
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
	Meetings []response.Meeting `json:"meetings"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{Meetings: response.FromDomainMeetings(result.Meetings)}, http.StatusOK)
}
