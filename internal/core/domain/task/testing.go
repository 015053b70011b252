package task

import (
	"context"
	"sort"
	"sync"
	"taskflow/internal/core/domain/user"
)

// FakeTaskRepository is an in-memory TaskRepository for tests. Filtering
// mirrors the SQL repository closely enough for service-level tests.
type FakeTaskRepository struct {
	Tasks       []Task
	CreateError error
	ReadError   error
	UpdateError error
	DeleteError error
	ReadWith    []ReadOptions
	LockedUsers []user.ID
	nextID      ID
	lock        sync.Mutex
}

func NewFakeTaskRepository() *FakeTaskRepository {
	return &FakeTaskRepository{nextID: 1}
}

func (r *FakeTaskRepository) Create(ctx context.Context, input CreateInput) (t Task, err error) {
	if r.CreateError != nil {
		return t, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	t = Task{
		ID:          r.nextID,
		CreatedBy:   input.CreatedBy,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		Priority:    input.Priority,
		Status:      input.Status,
		CreatedAt:   input.CreatedAt,
		UpdatedAt:   input.CreatedAt,
	}
	r.nextID++
	r.Tasks = append(r.Tasks, t)
	return t, nil
}

func (r *FakeTaskRepository) LockUser(ctx context.Context, userID user.ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.LockedUsers = append(r.LockedUsers, userID)
	return nil
}

func (r *FakeTaskRepository) GetByID(ctx context.Context, id ID) (t Task, err error) {
	if r.ReadError != nil {
		return t, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Tasks {
		if existing.ID == id {
			return existing, nil
		}
	}
	return t, ErrTaskDoesNotExist
}

func (r *FakeTaskRepository) Read(ctx context.Context, options ReadOptions) ([]Task, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ReadWith = append(r.ReadWith, options)

	tasks := make([]Task, 0)
	for _, t := range r.Tasks {
		if !matches(t, options) {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		switch options.OrderBy {
		case OrderByDateDesc:
			return tasks[i].Date.After(tasks[j].Date)
		case OrderByStartAtAsc:
			return tasks[i].StartAt.Value.Before(tasks[j].StartAt.Value)
		default:
			return tasks[i].Date.Before(tasks[j].Date)
		}
	})
	if options.Offset > 0 {
		if options.Offset >= uint(len(tasks)) {
			return []Task{}, nil
		}
		tasks = tasks[options.Offset:]
	}
	if options.Limit.IsPresent && options.Limit.Value < uint(len(tasks)) {
		tasks = tasks[:options.Limit.Value]
	}
	return tasks, nil
}

func (r *FakeTaskRepository) Count(ctx context.Context, options ReadOptions) (uint, error) {
	tasks, err := r.Read(ctx, options)
	if err != nil {
		return 0, err
	}
	return uint(len(tasks)), nil
}

func (r *FakeTaskRepository) Update(ctx context.Context, input UpdateInput) (t Task, err error) {
	if r.UpdateError != nil {
		return t, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Tasks {
		if r.Tasks[ix].ID != input.ID {
			continue
		}
		if input.DoTitleUpdate {
			r.Tasks[ix].Title = input.Title
		}
		if input.DoDescriptionUpdate {
			r.Tasks[ix].Description = input.Description
		}
		if input.DoDateUpdate {
			r.Tasks[ix].Date = input.Date
		}
		if input.DoStartAtUpdate {
			r.Tasks[ix].StartAt = input.StartAt
		}
		if input.DoEndAtUpdate {
			r.Tasks[ix].EndAt = input.EndAt
		}
		if input.DoPriorityUpdate {
			r.Tasks[ix].Priority = input.Priority
		}
		if input.DoStatusUpdate {
			r.Tasks[ix].Status = input.Status
		}
		r.Tasks[ix].UpdatedAt = input.UpdatedAt
		return r.Tasks[ix], nil
	}
	return t, ErrTaskDoesNotExist
}

func (r *FakeTaskRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Tasks {
		if r.Tasks[ix].ID == id {
			r.Tasks = append(r.Tasks[:ix], r.Tasks[ix+1:]...)
			return nil
		}
	}
	return ErrTaskDoesNotExist
}

func matches(t Task, options ReadOptions) bool {
	if options.CreatedByEquals.IsPresent && t.CreatedBy != options.CreatedByEquals.Value {
		return false
	}
	if options.DateEquals.IsPresent && !t.Date.Equal(options.DateEquals.Value) {
		return false
	}
	if options.IDNotEquals.IsPresent && t.ID == options.IDNotEquals.Value {
		return false
	}
	if options.StartAtAfter.IsPresent {
		if !t.StartAt.IsPresent || !t.StartAt.Value.After(options.StartAtAfter.Value) {
			return false
		}
	}
	if options.OverlapsWith.IsPresent {
		ival, ok := t.Interval()
		if !ok || !ival.Overlaps(options.OverlapsWith.Value) {
			return false
		}
	}
	return true
}
