package getuserbysessiontoken

import (
	"context"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"taskflow/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct{}

// New returns the identity service; combined with auth.WithAuthentication
// it resolves the current session token into the user it belongs to.
func New() services.Service[Input, Result] {
	return &service{}
}

func (s *service) Run(ctx context.Context, input Input) (Result, error) {
	return Result{User: input.User}, nil
}
