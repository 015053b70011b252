package user

import "errors"

var (
	ErrEmailAlreadyExists  = errors.New("user already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("invalid login credentials")
	ErrSessionDoesNotExist = errors.New("session does not exist")
)
