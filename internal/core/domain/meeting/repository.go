package meeting

import (
	"context"
	c "taskflow/internal/core/domain/common"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	Organizer   user.ID
	Title       string
	Description string
	Date        time.Time
	StartAt     time.Time
	EndAt       time.Time
	MeetingType Type
	Location    string
	Attendees   []c.Email
	CreatedAt   time.Time
}

// ReadOptions filters are combined with AND, except that OrganizerEquals
// and AttendeeContains form a single OR condition when both are present:
// a user sees the meetings they organize and the ones they are invited to.
type ReadOptions struct {
	OrganizerEquals  c.Optional[user.ID]
	AttendeeContains c.Optional[c.Email]
	OverlapsWith     c.Optional[task.Interval]
	IDNotEquals      c.Optional[ID]
	OrderByDateAsc   bool
}

type MeetingRepository interface {
	Create(ctx context.Context, input CreateInput) (Meeting, error)
	GetByID(ctx context.Context, id ID) (Meeting, error)
	Read(ctx context.Context, options ReadOptions) ([]Meeting, error)
	Delete(ctx context.Context, id ID) error
}
