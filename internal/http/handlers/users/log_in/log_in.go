package login

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	ratelimiter "taskflow/internal/core/domain/rate_limiter"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	service "taskflow/internal/core/services/log_in"
	"taskflow/internal/http/handlers/response"

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
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Result struct {
	User  response.User `json:"user"`
	Token string        `json:"token"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
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

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, user.ErrInvalidCredentials):
			response.RenderError(rw, err.Error(), http.StatusUnauthorized)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respUser := response.User{}
	respUser.FromDomainUser(result.User)
	response.Render(rw, Result{User: respUser, Token: string(result.Token)}, http.StatusOK)
}
