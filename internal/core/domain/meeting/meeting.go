package meeting

import (
	"strings"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"time"
)

type ID int64

type Meeting struct {
	ID          ID
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

func (m *Meeting) Validate() error {
	if m.Title == "" {
		return e.NewInvalidStateError("meeting title is not set")
	}
	if !m.StartAt.Before(m.EndAt) {
		return task.ErrInvalidInterval
	}
	if m.MeetingType != TypeOnline && m.Location == "" {
		return ErrLocationRequired
	}
	return nil
}

// ValidateAttendees rejects attendee addresses no mail could be delivered
// to. Full address format validation happens at the HTTP edge.
func ValidateAttendees(attendees []c.Email) error {
	for _, attendee := range attendees {
		if attendee == "" || !strings.Contains(string(attendee), "@") {
			return ErrInvalidAttendee
		}
	}
	return nil
}

func (m *Meeting) Interval() task.Interval {
	return task.Interval{Start: m.StartAt, End: m.EndAt}
}

// FindConflict scans the given meetings for one whose interval overlaps the
// candidate, skipping the meeting with id equal to excludeID.
func FindConflict(meetings []Meeting, candidate task.Interval, excludeID ID) (Meeting, bool) {
	for _, m := range meetings {
		if m.ID == excludeID {
			continue
		}
		if m.Interval().Overlaps(candidate) {
			return m, true
		}
	}
	return Meeting{}, false
}
