package user

import (
	"context"
	"database/sql"
	"errors"
	c "taskflow/internal/core/domain/common"
	e "taskflow/internal/core/domain/errors"
	"taskflow/internal/core/domain/user"
	"taskflow/internal/db"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, name, email, password_hash, created_at, last_login_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = decodeUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == db.PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	return u, err
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = decodeUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = decodeUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetLastLoginAt(ctx context.Context, id user.ID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE "user" SET last_login_at = $1 WHERE id = $2`, at, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func decodeUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		name         string
		email        string
		passwordHash string
		createdAt    time.Time
		lastLoginAt  sql.NullTime
	)
	if err := row.Scan(&id, &name, &email, &passwordHash, &createdAt, &lastLoginAt); err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Name:         name,
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		CreatedAt:    createdAt,
		LastLoginAt:  c.NewOptional(lastLoginAt.Time, lastLoginAt.Valid),
	}, nil
}
