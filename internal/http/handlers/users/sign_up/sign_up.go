package signup

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
	service "taskflow/internal/core/services/sign_up"
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
	Name     string `json:"name"`
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
		validation.Field(&i.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 512)),
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
			Name:     input.Name,
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respUser := response.User{}
	respUser.FromDomainUser(result.User)
	response.Render(rw, Result{User: respUser, Token: string(result.Token)}, http.StatusCreated)
}
