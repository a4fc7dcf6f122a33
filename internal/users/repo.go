package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrPhoneTaken = errors.New("user with this phone number already exists")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

const userColumns = `id, first_name, last_name, phone_number, password_hash, role, avatar, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, u *User) error {
	const q = `
INSERT INTO users (first_name, last_name, phone_number, password_hash, role, avatar)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q,
		u.FirstName, u.LastName, u.PhoneNumber, u.PasswordHash, u.Role, u.Avatar,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrPhoneTaken
	}
	return err
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pg.QueryRow(ctx, q, id))
}

func (r *Repo) FindByPhone(ctx context.Context, canonical string) (*User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return scanUser(r.pg.QueryRow(ctx, q, canonical))
}

// PhoneExists implements otp.UserStore: uniqueness is always checked against
// the canonical form.
func (r *Repo) PhoneExists(ctx context.Context, canonical string) (bool, error) {
	var exists bool
	err := r.pg.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE phone_number = $1)`, canonical,
	).Scan(&exists)
	return exists, err
}

// ListFilter narrows and pages the user list. Search matches first name,
// last name or phone, case-insensitively.
type ListFilter struct {
	Role   string
	Search string
	Limit  int
	Offset int
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]User, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Role != "" {
		args = append(args, f.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR phone_number ILIKE $%d)", n, n, n))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM users`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT `+userColumns+` FROM users%s ORDER BY created_at LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))
	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := scanUserInto(rows, &u); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *Repo) Update(ctx context.Context, u *User) error {
	const q = `
UPDATE users
SET first_name = $2, last_name = $3, phone_number = $4, password_hash = $5, role = $6, avatar = $7, updated_at = now()
WHERE id = $1
RETURNING updated_at`
	err := r.pg.QueryRow(ctx, q,
		u.ID, u.FirstName, u.LastName, u.PhoneNumber, u.PasswordHash, u.Role, u.Avatar,
	).Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrPhoneTaken
	}
	return err
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := scanUserInto(row, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func scanUserInto(row pgx.Row, u *User) error {
	return row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.PasswordHash, &u.Role, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
