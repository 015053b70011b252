package response

import (
	"taskflow/internal/core/domain/user"
	"time"
)

type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Name = du.Name
	u.Email = string(du.Email)
	u.CreatedAt = du.CreatedAt
	if du.LastLoginAt.IsPresent {
		u.LastLoginAt = &du.LastLoginAt.Value
	}
}
