package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("schedule entry not found")
	ErrBadReference = errors.New("referenced specialist or schedule does not exist")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

// --- work schedules ---

func (r *Repo) CreateWorkSchedule(ctx context.Context, w *WorkSchedule) error {
	const q = `
INSERT INTO work_schedules (specialist_id, start_time, end_time, is_active)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q, w.SpecialistID, w.StartTime, w.EndTime, w.IsActive).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrBadReference
	}
	return err
}

func (r *Repo) ListWorkSchedules(ctx context.Context, specialistID *uuid.UUID, limit, offset int) ([]WorkSchedule, int, error) {
	cond := ""
	args := []any{}
	if specialistID != nil {
		cond = ` WHERE specialist_id = $1`
		args = append(args, *specialistID)
	}

	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM work_schedules`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	q := `SELECT id, specialist_id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), is_active, created_at, updated_at
FROM work_schedules` + cond + fmt.Sprintf(` ORDER BY created_at LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []WorkSchedule
	for rows.Next() {
		var w WorkSchedule
		if err := rows.Scan(&w.ID, &w.SpecialistID, &w.StartTime, &w.EndTime, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, w)
	}
	return out, total, rows.Err()
}

func (r *Repo) FindWorkScheduleByID(ctx context.Context, id uuid.UUID) (*WorkSchedule, error) {
	row := r.pg.QueryRow(ctx, `
SELECT id, specialist_id, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), is_active, created_at, updated_at
FROM work_schedules WHERE id = $1`, id)
	var w WorkSchedule
	err := row.Scan(&w.ID, &w.SpecialistID, &w.StartTime, &w.EndTime, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repo) DeleteWorkSchedule(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM work_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- time off ---

func (r *Repo) CreateTimeOff(ctx context.Context, t *TimeOff) error {
	const q = `
INSERT INTO time_offs (specialist_id, work_schedule_id, date, reason)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q, t.SpecialistID, t.WorkScheduleID, t.Date, t.Reason).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrBadReference
	}
	return err
}

func (r *Repo) ListTimeOffs(ctx context.Context, specialistID *uuid.UUID, limit, offset int) ([]TimeOff, int, error) {
	cond := ""
	args := []any{}
	if specialistID != nil {
		cond = ` WHERE specialist_id = $1`
		args = append(args, *specialistID)
	}

	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM time_offs`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	q := `SELECT id, specialist_id, work_schedule_id, date, reason, created_at, updated_at
FROM time_offs` + cond + fmt.Sprintf(` ORDER BY date LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []TimeOff
	for rows.Next() {
		var t TimeOff
		if err := rows.Scan(&t.ID, &t.SpecialistID, &t.WorkScheduleID, &t.Date, &t.Reason, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *Repo) DeleteTimeOff(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM time_offs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
