package meeting

import (
	"context"
	"sort"
	"sync"
	c "taskflow/internal/core/domain/common"
)

type FakeMeetingRepository struct {
	Meetings    []Meeting
	CreateError error
	ReadError   error
	DeleteError error
	nextID      ID
	lock        sync.Mutex
}

func NewFakeMeetingRepository() *FakeMeetingRepository {
	return &FakeMeetingRepository{nextID: 1}
}

func (r *FakeMeetingRepository) Create(ctx context.Context, input CreateInput) (m Meeting, err error) {
	if r.CreateError != nil {
		return m, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	m = Meeting{
		ID:          r.nextID,
		Organizer:   input.Organizer,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		MeetingType: input.MeetingType,
		Location:    input.Location,
		Attendees:   input.Attendees,
		CreatedAt:   input.CreatedAt,
	}
	r.nextID++
	r.Meetings = append(r.Meetings, m)
	return m, nil
}

func (r *FakeMeetingRepository) GetByID(ctx context.Context, id ID) (m Meeting, err error) {
	if r.ReadError != nil {
		return m, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Meetings {
		if existing.ID == id {
			return existing, nil
		}
	}
	return m, ErrMeetingDoesNotExist
}

func (r *FakeMeetingRepository) Read(ctx context.Context, options ReadOptions) ([]Meeting, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	meetings := make([]Meeting, 0)
	for _, m := range r.Meetings {
		if options.OrganizerEquals.IsPresent || options.AttendeeContains.IsPresent {
			organized := options.OrganizerEquals.IsPresent &&
				m.Organizer == options.OrganizerEquals.Value
			invited := options.AttendeeContains.IsPresent &&
				containsAttendee(m.Attendees, options.AttendeeContains.Value)
			if !organized && !invited {
				continue
			}
		}
		if options.IDNotEquals.IsPresent && m.ID == options.IDNotEquals.Value {
			continue
		}
		if options.OverlapsWith.IsPresent && !m.Interval().Overlaps(options.OverlapsWith.Value) {
			continue
		}
		meetings = append(meetings, m)
	}
	if options.OrderByDateAsc {
		sort.SliceStable(meetings, func(i, j int) bool {
			return meetings[i].Date.Before(meetings[j].Date)
		})
	}
	return meetings, nil
}

func containsAttendee(attendees []c.Email, attendee c.Email) bool {
	for _, existing := range attendees {
		if existing == attendee {
			return true
		}
	}
	return false
}

func (r *FakeMeetingRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Meetings {
		if r.Meetings[ix].ID == id {
			r.Meetings = append(r.Meetings[:ix], r.Meetings[ix+1:]...)
			return nil
		}
	}
	return ErrMeetingDoesNotExist
}
