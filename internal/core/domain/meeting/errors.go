package meeting

import (
	"errors"
	"fmt"
)

var (
	ErrMeetingDoesNotExist = errors.New("meeting does not exist")
	ErrMeetingPermission   = errors.New("meeting belongs to another user")
	ErrLocationRequired    = errors.New("location is required for in-person meetings")
	ErrInvalidAttendee     = errors.New("invalid attendee email")
)

// ConflictError is returned when a candidate time slot overlaps another
// meeting organized by the same user.
type ConflictError struct {
	ConflictingID    ID
	ConflictingTitle string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot overlaps with another meeting: %q", e.ConflictingTitle)
}
