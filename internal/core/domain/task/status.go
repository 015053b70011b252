package task

import "fmt"

type Status struct {
	value string
}

var (
	StatusTodo       = Status{value: "todo"}
	StatusInProgress = Status{value: "in-progress"}
	StatusCompleted  = Status{value: "completed"}
)

func (s Status) String() string {
	if s.value == "" {
		return StatusTodo.value
	}
	return s.value
}

func ParseStatus(raw string) (Status, error) {
	switch raw {
	case "", StatusTodo.value:
		return StatusTodo, nil
	case StatusInProgress.value:
		return StatusInProgress, nil
	case StatusCompleted.value:
		return StatusCompleted, nil
	}
	return Status{}, fmt.Errorf("invalid task status: %s", raw)
}

type Priority struct {
	value string
}

var (
	PriorityLow    = Priority{value: "low"}
	PriorityMedium = Priority{value: "medium"}
	PriorityHigh   = Priority{value: "high"}
)

func (p Priority) String() string {
	if p.value == "" {
		return PriorityMedium.value
	}
	return p.value
}

func ParsePriority(raw string) (Priority, error) {
	switch raw {
	case PriorityLow.value:
		return PriorityLow, nil
	case "", PriorityMedium.value:
		return PriorityMedium, nil
	case PriorityHigh.value:
		return PriorityHigh, nil
	}
	return Priority{}, fmt.Errorf("invalid task priority: %s", raw)
}
