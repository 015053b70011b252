package response

import (
	"taskflow/internal/core/domain/meeting"
	"time"
)

type Meeting struct {
	ID          int64     `json:"id"`
	Organizer   int64     `json:"organizer"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	MeetingType string    `json:"meeting_type"`
	Location    string    `json:"location"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *Meeting) FromDomainMeeting(dm meeting.Meeting) {
	m.ID = int64(dm.ID)
	m.Organizer = int64(dm.Organizer)
	m.Title = dm.Title
	m.Description = dm.Description
	m.Date = dm.Date.Format(DATE_LAYOUT)
	m.StartAt = dm.StartAt
	m.EndAt = dm.EndAt
	m.MeetingType = dm.MeetingType.String()
	m.Location = dm.Location
	m.Attendees = make([]string, 0, len(dm.Attendees))
	for _, attendee := range dm.Attendees {
		m.Attendees = append(m.Attendees, string(attendee))
	}
	m.CreatedAt = dm.CreatedAt
}

func FromDomainMeetings(dms []meeting.Meeting) []Meeting {
	meetings := make([]Meeting, len(dms))
	for ix, dm := range dms {
		meetings[ix].FromDomainMeeting(dm)
	}
	return meetings
}
