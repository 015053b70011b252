package task

import (
	"context"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	CreatedBy   user.ID
	Title       string
	Description string
	Date        time.Time
	StartAt     c.Optional[time.Time]
	EndAt       c.Optional[time.Time]
	Priority    Priority
	Status      Status
	CreatedAt   time.Time
}

type ReadOptions struct {
	CreatedByEquals c.Optional[user.ID]
	DateEquals      c.Optional[time.Time]
	// OverlapsWith restricts the result to tasks whose [StartAt, EndAt)
	// interval intersects the given one.
	OverlapsWith c.Optional[Interval]
	IDNotEquals  c.Optional[ID]
	StartAtAfter c.Optional[time.Time]
	OrderBy      OrderBy
	Limit        c.Optional[uint]
	Offset       uint
}

type UpdateInput struct {
	ID                  ID
	DoTitleUpdate       bool
	Title               string
	DoDescriptionUpdate bool
	Description         string
	DoDateUpdate        bool
	Date                time.Time
	DoStartAtUpdate     bool
	StartAt             c.Optional[time.Time]
	DoEndAtUpdate       bool
	EndAt               c.Optional[time.Time]
	DoPriorityUpdate    bool
	Priority            Priority
	DoStatusUpdate      bool
	Status              Status
	UpdatedAt           time.Time
}

type TaskRepository interface {
	Create(ctx context.Context, input CreateInput) (Task, error)
	// LockUser serializes concurrent schedule writes for one user. The
	// lock is released when the surrounding transaction ends; outside a
	// transaction it is a no-op.
	LockUser(ctx context.Context, userID user.ID) error
	GetByID(ctx context.Context, id ID) (Task, error)
	Read(ctx context.Context, options ReadOptions) ([]Task, error)
	Count(ctx context.Context, options ReadOptions) (uint, error)
	Update(ctx context.Context, input UpdateInput) (Task, error)
	Delete(ctx context.Context, id ID) error
}
