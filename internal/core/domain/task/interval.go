package task

import "time"

// Interval is a half-open time range [Start, End) used for overlap
// comparison. It is derived from a task and never persisted on its own.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) (i Interval, err error) {
	if !start.Before(end) {
		return i, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// intervals (one's end equals the other's start) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// FindConflict scans the given tasks for one whose interval overlaps the
// candidate. The task with id equal to excludeID is skipped, so an update
// never conflicts with the item's own prior record. Tasks without a time
// slot never conflict.
func FindConflict(tasks []Task, candidate Interval, excludeID ID) (Task, bool) {
	for _, t := range tasks {
		if t.ID == excludeID {
			continue
		}
		ival, ok := t.Interval()
		if !ok {
			continue
		}
		if ival.Overlaps(candidate) {
			return t, true
		}
	}
	return Task{}, false
}
