package login

import (
	"context"
	"errors"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/logging"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/core/services"
	"time"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "log_in::" + string(i.Email)
}

type Result struct {
	User  user.User
	Token user.SessionToken
}

type service struct {
	log               logging.Logger
	userRepository    user.UserRepository
	sessionRepository user.SessionRepository
	passwordHasher    user.PasswordHasher
	tokenGenerator    user.SessionTokenGenerator
	now               func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionRepository user.SessionRepository,
	passwordHasher user.PasswordHasher,
	tokenGenerator user.SessionTokenGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		passwordHasher:    passwordHasher,
		tokenGenerator:    tokenGenerator,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserDoesNotExist) {
			return result, user.ErrInvalidCredentials
		}
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		s.log.Info(ctx, "Invalid password provided.", logging.Entry("userID", u.ID))
		return result, user.ErrInvalidCredentials
	}

	token := s.tokenGenerator.GenerateSessionToken()
	err = s.sessionRepository.Create(ctx, user.CreateSessionInput{
		Token:     token,
		UserID:    u.ID,
		CreatedAt: s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}
	if err := s.userRepository.SetLastLoginAt(ctx, u.ID, s.now()); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
	}

	s.log.Info(ctx, "User has logged in.", logging.Entry("userID", u.ID))
	return Result{User: u, Token: token}, nil
}
