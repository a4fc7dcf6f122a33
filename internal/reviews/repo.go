package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("review not found")
	ErrBadReference = errors.New("referenced appointment or client does not exist")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

const columns = `id, appointment_id, client_id, rating, comment, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, v *Review) error {
	const q = `
INSERT INTO reviews (appointment_id, client_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q, v.AppointmentID, v.ClientID, v.Rating, v.Comment).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrBadReference
	}
	return err
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	row := r.pg.QueryRow(ctx, `SELECT `+columns+` FROM reviews WHERE id = $1`, id)
	var v Review
	err := row.Scan(&v.ID, &v.AppointmentID, &v.ClientID, &v.Rating, &v.Comment, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) List(ctx context.Context, limit, offset int) ([]Review, int, error) {
	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM reviews`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pg.Query(ctx,
		`SELECT `+columns+` FROM reviews ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var v Review
		if err := rows.Scan(&v.ID, &v.AppointmentID, &v.ClientID, &v.Rating, &v.Comment, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
