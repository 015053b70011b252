package user

import (
	"fmt"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

type User struct {
	ID           ID
	Name         string
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
	LastLoginAt  c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	return nil
}
