package booking

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
	ErrNotFound     = errors.New("appointment not found")
	ErrBadReference = errors.New("referenced user or service does not exist")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

func (r *Repo) Create(ctx context.Context, a *Appointment) error {
	const q = `
INSERT INTO appointments (specialist_id, client_id, service_id, status)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q, a.SpecialistID, a.ClientID, a.ServiceID, a.Status).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrBadReference
	}
	return err
}

// listSelect joins the display names the way the booking clients expect them.
const listSelect = `
SELECT a.id, a.specialist_id, a.client_id, a.service_id, a.status, a.created_at, a.updated_at,
       trim(sp.first_name || ' ' || sp.last_name)  AS specialist_name,
       trim(cl.first_name || ' ' || cl.last_name)  AS client_name,
       sv.name                                     AS service_name
FROM appointments a
JOIN users sp ON sp.id = a.specialist_id
JOIN users cl ON cl.id = a.client_id
JOIN services sv ON sv.id = a.service_id`

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pg.QueryRow(ctx, listSelect+` WHERE a.id = $1`, id)
	a, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// ListFilter narrows and pages the appointment list.
type ListFilter struct {
	Status       string
	SpecialistID *uuid.UUID
	ClientID     *uuid.UUID
	Limit        int
	Offset       int
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Appointment, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if f.SpecialistID != nil {
		args = append(args, *f.SpecialistID)
		where = append(where, fmt.Sprintf("a.specialist_id = $%d", len(args)))
	}
	if f.ClientID != nil {
		args = append(args, *f.ClientID)
		where = append(where, fmt.Sprintf("a.client_id = $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM appointments a`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(listSelect+`%s ORDER BY a.created_at LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))
	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *a)
	}
	return out, total, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	ct, err := r.pg.Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scan(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(
		&a.ID, &a.SpecialistID, &a.ClientID, &a.ServiceID, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&a.SpecialistName, &a.ClientName, &a.ServiceName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
