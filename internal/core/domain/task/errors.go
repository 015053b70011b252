package task

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInterval  = errors.New("end time must be after start time")
	ErrTaskDoesNotExist = errors.New("task does not exist")
	ErrTaskPermission   = errors.New("task belongs to another user")
)

// ConflictError is returned when a candidate time slot overlaps another
// task owned by the same user.
type ConflictError struct {
	ConflictingID    ID
	ConflictingTitle string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot overlaps with another task: %q", e.ConflictingTitle)
}
