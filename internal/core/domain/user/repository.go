package user

import (
	"context"
	c "taskflow/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetLastLoginAt(ctx context.Context, id ID, at time.Time) error
}

type CreateSessionInput struct {
	Token     SessionToken
	UserID    ID
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (ID, error)
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type SessionTokenGenerator interface {
	GenerateSessionToken() SessionToken
}
