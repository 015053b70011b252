package logout

import (
	"context"
	"errors"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
)

type Input struct {
	Token user.SessionToken
}

type Result struct{}

type service struct {
	log               logging.Logger
	sessionRepository user.SessionRepository
}

func New(
	log logging.Logger,
	sessionRepository user.SessionRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	return &service{log: log, sessionRepository: sessionRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.sessionRepository.Delete(ctx, input.Token)
	if err != nil {
		if errors.Is(err, user.ErrSessionDoesNotExist) {
			return result, err
		}
		logging.Error(ctx, s.log, err)
		return result, err
	}
	s.log.Info(ctx, "User has logged out.", logging.Entry("userID", userID))
	return result, nil
}
