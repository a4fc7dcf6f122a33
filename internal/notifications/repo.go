package notifications

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
	ErrNotFound     = errors.New("notification not found")
	ErrBadReference = errors.New("referenced user does not exist")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

const columns = `id, user_id, message, type, is_read, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, n *Notification) error {
	const q = `
INSERT INTO notifications (user_id, message, type, is_read)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q, n.UserID, n.Message, n.Type, n.IsRead).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrBadReference
	}
	return err
}

// ListFilter narrows and pages a user's notifications.
type ListFilter struct {
	UserID *uuid.UUID
	IsRead *bool
	Limit  int
	Offset int
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Notification, int, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID != nil {
		args = append(args, *f.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.IsRead != nil {
		args = append(args, *f.IsRead)
		where = append(where, fmt.Sprintf("is_read = $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM notifications`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT `+columns+` FROM notifications%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))
	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	row := r.pg.QueryRow(ctx, `SELECT `+columns+` FROM notifications WHERE id = $1`, id)
	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead flips is_read; notifications are read once, never unread.
func (r *Repo) MarkRead(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
