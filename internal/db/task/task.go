package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/task"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/db"
	"time"

	"github.com/jackc/pgx/v4"
)

const taskColumns = `id, created_by, title, description, date, start_at, end_at, priority, status, created_at, updated_at`

type PgxTaskRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxTaskRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxTaskRepository{db: db}
}

func (r *PgxTaskRepository) Create(ctx context.Context, input task.CreateInput) (t task.Task, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO task (created_by, title, description, date, start_at, end_at, priority, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		 RETURNING `+taskColumns,
		int64(input.CreatedBy),
		input.Title,
		input.Description,
		input.Date,
		encodeOptionalTime(input.StartAt),
		encodeOptionalTime(input.EndAt),
		input.Priority.String(),
		input.Status.String(),
		input.CreatedAt,
	)
	// Input validation happens before the write; the task_slot_check
	// constraint backs it up in the database.
	return decodeTask(row)
}

// LockUser takes the per-user advisory lock guarding schedule writes.
// The lock is transaction scoped and released automatically on commit or
// rollback.
func (r *PgxTaskRepository) LockUser(ctx context.Context, userID user.ID) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(userID))
	return err
}

func (r *PgxTaskRepository) GetByID(ctx context.Context, id task.ID) (t task.Task, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM task WHERE id = $1`, int64(id))
	t, err = decodeTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, task.ErrTaskDoesNotExist
	}
	if err != nil {
		return t, err
	}
	return t, t.Validate()
}

func (r *PgxTaskRepository) Read(ctx context.Context, options task.ReadOptions) ([]task.Task, error) {
	where, args := encodeReadOptions(options)
	query := `SELECT ` + taskColumns + ` FROM task` + where

	switch options.OrderBy {
	case task.OrderByDateDesc:
		query += ` ORDER BY date DESC, id DESC`
	case task.OrderByStartAtAsc:
		query += ` ORDER BY start_at ASC, id ASC`
	default:
		query += ` ORDER BY date ASC, id ASC`
	}
	if options.Limit.IsPresent {
		args = append(args, options.Limit.Value)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if options.Offset > 0 {
		args = append(args, options.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := decodeTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PgxTaskRepository) Count(ctx context.Context, options task.ReadOptions) (uint, error) {
	where, args := encodeReadOptions(options)
	row := r.db.QueryRow(ctx, `SELECT count(*) FROM task`+where, args...)
	var count uint
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgxTaskRepository) Update(ctx context.Context, input task.UpdateInput) (t task.Task, err error) {
	assignments := make([]string, 0, 8)
	args := make([]interface{}, 0, 9)
	assign := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.DoTitleUpdate {
		assign("title", input.Title)
	}
	if input.DoDescriptionUpdate {
		assign("description", input.Description)
	}
	if input.DoDateUpdate {
		assign("date", input.Date)
	}
	if input.DoStartAtUpdate {
		assign("start_at", encodeOptionalTime(input.StartAt))
	}
	if input.DoEndAtUpdate {
		assign("end_at", encodeOptionalTime(input.EndAt))
	}
	if input.DoPriorityUpdate {
		assign("priority", input.Priority.String())
	}
	if input.DoStatusUpdate {
		assign("status", input.Status.String())
	}
	assign("updated_at", input.UpdatedAt)

	args = append(args, int64(input.ID))
	query := fmt.Sprintf(
		`UPDATE task SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(assignments, ", "),
		len(args),
		taskColumns,
	)

	t, err = decodeTask(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return t, task.ErrTaskDoesNotExist
	}
	return t, err
}

func (r *PgxTaskRepository) Delete(ctx context.Context, id task.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM task WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskDoesNotExist
	}
	return nil
}

func encodeReadOptions(options task.ReadOptions) (where string, args []interface{}) {
	conditions := make([]string, 0, 4)
	condition := func(format string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if options.CreatedByEquals.IsPresent {
		condition("created_by = $%d", int64(options.CreatedByEquals.Value))
	}
	if options.DateEquals.IsPresent {
		condition("date = $%d", options.DateEquals.Value)
	}
	if options.IDNotEquals.IsPresent {
		condition("id <> $%d", int64(options.IDNotEquals.Value))
	}
	if options.StartAtAfter.IsPresent {
		condition("start_at > $%d", options.StartAtAfter.Value)
	}
	if options.OverlapsWith.IsPresent {
		// Half-open interval overlap: two slots conflict when each one
		// starts before the other ends.
		condition("start_at < $%d", options.OverlapsWith.Value.End)
		condition("end_at > $%d", options.OverlapsWith.Value.Start)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func encodeOptionalTime(at c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: at.Value, Valid: at.IsPresent}
}

func decodeTask(row pgx.Row) (t task.Task, err error) {
	var (
		id          int64
		createdBy   int64
		title       string
		description string
		date        time.Time
		startAt     sql.NullTime
		endAt       sql.NullTime
		rawPriority string
		rawStatus   string
		createdAt   time.Time
		updatedAt   time.Time
	)
	err = row.Scan(
		&id, &createdBy, &title, &description, &date,
		&startAt, &endAt, &rawPriority, &rawStatus, &createdAt, &updatedAt,
	)
	if err != nil {
		return t, err
	}
	priority, err := task.ParsePriority(rawPriority)
	if err != nil {
		return t, err
	}
	status, err := task.ParseStatus(rawStatus)
	if err != nil {
		return t, err
	}
	return task.Task{
		ID:          task.ID(id),
		CreatedBy:   user.ID(createdBy),
		Title:       title,
		Description: description,
		Date:        date,
		StartAt:     c.NewOptional(startAt.Time, startAt.Valid),
		EndAt:       c.NewOptional(endAt.Time, endAt.Valid),
		Priority:    priority,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
