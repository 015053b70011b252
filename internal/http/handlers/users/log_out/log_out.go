package logout

import (
	"errors"
	"net/http"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	service "taskflow/internal/core/services/log_out"
	"taskflow/internal/http/handlers/auth"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}
	_, err := h.service.Run(
		r.Context(),
		service.Input{Token: token},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	response.Render(rw, struct{}{}, http.StatusOK)
}
