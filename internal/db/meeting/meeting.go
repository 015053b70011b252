package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/meeting"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/db"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const meetingColumns = `id, organizer, title, description, date, start_at, end_at, meeting_type, location, attendees, created_at`

type PgxMeetingRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxMeetingRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxMeetingRepository{db: db}
}

func (r *PgxMeetingRepository) Create(ctx context.Context, input meeting.CreateInput) (m meeting.Meeting, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO meeting (organizer, title, description, date, start_at, end_at, meeting_type, location, attendees, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+meetingColumns,
		int64(input.Organizer),
		input.Title,
		input.Description,
		input.Date,
		input.StartAt,
		input.EndAt,
		input.MeetingType.String(),
		input.Location,
		encodeAttendees(input.Attendees),
		input.CreatedAt,
	)
	return decodeMeeting(row)
}

func (r *PgxMeetingRepository) GetByID(ctx context.Context, id meeting.ID) (m meeting.Meeting, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meeting WHERE id = $1`, int64(id))
	m, err = decodeMeeting(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return m, meeting.ErrMeetingDoesNotExist
	}
	if err != nil {
		return m, err
	}
	return m, m.Validate()
}

func (r *PgxMeetingRepository) Read(ctx context.Context, options meeting.ReadOptions) ([]meeting.Meeting, error) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	condition := func(format string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	switch {
	case options.OrganizerEquals.IsPresent && options.AttendeeContains.IsPresent:
		args = append(args, int64(options.OrganizerEquals.Value), string(options.AttendeeContains.Value))
		conditions = append(conditions, fmt.Sprintf(
			"(organizer = $%d OR attendees @> ARRAY[$%d]::text[])",
			len(args)-1, len(args),
		))
	case options.OrganizerEquals.IsPresent:
		condition("organizer = $%d", int64(options.OrganizerEquals.Value))
	case options.AttendeeContains.IsPresent:
		condition("attendees @> ARRAY[$%d]::text[]", string(options.AttendeeContains.Value))
	}
	if options.IDNotEquals.IsPresent {
		condition("id <> $%d", int64(options.IDNotEquals.Value))
	}
	if options.OverlapsWith.IsPresent {
		condition("start_at < $%d", options.OverlapsWith.Value.End)
		condition("end_at > $%d", options.OverlapsWith.Value.Start)
	}

	query := `SELECT ` + meetingColumns + ` FROM meeting`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	if options.OrderByDateAsc {
		query += ` ORDER BY date ASC, start_at ASC, id ASC`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetings := make([]meeting.Meeting, 0)
	for rows.Next() {
		m, err := decodeMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (r *PgxMeetingRepository) Delete(ctx context.Context, id meeting.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meeting WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return meeting.ErrMeetingDoesNotExist
	}
	return nil
}

func encodeAttendees(attendees []c.Email) []string {
	encoded := make([]string, 0, len(attendees))
	for _, attendee := range attendees {
		encoded = append(encoded, string(attendee))
	}
	return encoded
}

func decodeMeeting(row pgx.Row) (m meeting.Meeting, err error) {
	var (
		id          int64
		organizer   int64
		title       string
		description string
		date        time.Time
		startAt     time.Time
		endAt       time.Time
		rawType     string
		location    string
		attendees   pgtype.TextArray
		createdAt   time.Time
	)
	err = row.Scan(
		&id, &organizer, &title, &description, &date,
		&startAt, &endAt, &rawType, &location, &attendees, &createdAt,
	)
	if err != nil {
		return m, err
	}
	meetingType, err := meeting.ParseType(rawType)
	if err != nil {
		return m, err
	}
	decodedAttendees := make([]c.Email, 0, len(attendees.Elements))
	for _, element := range attendees.Elements {
		if element.Status == pgtype.Present {
			decodedAttendees = append(decodedAttendees, c.Email(element.String))
		}
	}
	return meeting.Meeting{
		ID:          meeting.ID(id),
		Organizer:   user.ID(organizer),
		Title:       title,
		Description: description,
		Date:        date,
		StartAt:     startAt,
		EndAt:       endAt,
		MeetingType: meetingType,
		Location:    location,
		Attendees:   decodedAttendees,
		CreatedAt:   createdAt,
	}, nil
}
