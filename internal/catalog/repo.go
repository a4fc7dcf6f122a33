package catalog

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
	ErrNotFound          = errors.New("catalog entry not found")
	ErrNotASpecialist    = errors.New("specialist with given id is not found")
	ErrBusinessReference = errors.New("referenced business or service does not exist")
)

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

// --- services ---

const serviceColumns = `id, name, description, business_id, is_active, created_at, updated_at`

func (r *Repo) CreateService(ctx context.Context, s *Service) error {
	const q = `
INSERT INTO services (name, description, business_id, is_active)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q, s.Name, s.Description, s.BusinessID, s.IsActive).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrBusinessReference
	}
	return err
}

func (r *Repo) FindServiceByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	row := r.pg.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	var s Service
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.BusinessID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ServiceFilter narrows and pages the service list.
type ServiceFilter struct {
	BusinessID *uuid.UUID
	IsActive   *bool
	Search     string
	Limit      int
	Offset     int
}

func (r *Repo) ListServices(ctx context.Context, f ServiceFilter) ([]Service, int, error) {
	var (
		where []string
		args  []any
	)
	if f.BusinessID != nil {
		args = append(args, *f.BusinessID)
		where = append(where, fmt.Sprintf("business_id = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM services`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT `+serviceColumns+` FROM services%s ORDER BY created_at LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))
	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.BusinessID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// ListServicesForBusiness returns the services embedded in business responses.
func (r *Repo) ListServicesForBusiness(ctx context.Context, businessID uuid.UUID) ([]Service, error) {
	rows, err := r.pg.Query(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE business_id = $1 ORDER BY created_at`, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Service{}
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.BusinessID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateService(ctx context.Context, s *Service) error {
	const q = `
UPDATE services
SET name = $2, description = $3, business_id = $4, is_active = $5, updated_at = now()
WHERE id = $1
RETURNING updated_at`
	err := r.pg.QueryRow(ctx, q, s.ID, s.Name, s.Description, s.BusinessID, s.IsActive).Scan(&s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *Repo) DeleteService(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- sub-services ---

func (r *Repo) CreateSubService(ctx context.Context, s *SubService) error {
	const q = `
INSERT INTO sub_services (name, description, service_id, specialist_id)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q, s.Name, s.Description, s.ServiceID, s.SpecialistID).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrBusinessReference
	}
	return err
}

func (r *Repo) ListSubServices(ctx context.Context, serviceID uuid.UUID) ([]SubService, error) {
	rows, err := r.pg.Query(ctx, `
SELECT id, name, description, service_id, specialist_id, created_at, updated_at
FROM sub_services WHERE service_id = $1 ORDER BY created_at`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SubService{}
	for rows.Next() {
		var s SubService
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ServiceID, &s.SpecialistID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// --- specialist offers ---

func (r *Repo) CreateSpecialistService(ctx context.Context, s *SpecialistService) error {
	const q = `
INSERT INTO specialist_services (specialist_id, sub_service_id, price, duration)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`
	err := r.pg.QueryRow(ctx, q, s.SpecialistID, s.SubServiceID, s.Price, s.Duration).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrBusinessReference
	}
	return err
}

// --- business workers ---

const workerColumns = `id, specialist_id, service_id, position, bio, years_of_experience, is_active, created_at, updated_at`

// CreateWorker inserts a business worker; the referenced user must carry the
// specialist role.
func (r *Repo) CreateWorker(ctx context.Context, w *BusinessWorker) error {
	var role string
	err := r.pg.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, w.SpecialistID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotASpecialist
	}
	if err != nil {
		return err
	}
	if role != "specialist" {
		return ErrNotASpecialist
	}

	const q = `
INSERT INTO business_workers (specialist_id, service_id, position, bio, years_of_experience, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`
	err = r.pg.QueryRow(ctx, q,
		w.SpecialistID, w.ServiceID, w.Position, w.Bio, w.YearsOfExperience, w.IsActive,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if isForeignKeyViolation(err) {
		return ErrBusinessReference
	}
	return err
}

func (r *Repo) FindWorkerByID(ctx context.Context, id uuid.UUID) (*BusinessWorker, error) {
	row := r.pg.QueryRow(ctx, `SELECT `+workerColumns+` FROM business_workers WHERE id = $1`, id)
	var w BusinessWorker
	err := row.Scan(&w.ID, &w.SpecialistID, &w.ServiceID, &w.Position, &w.Bio, &w.YearsOfExperience, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repo) ListWorkers(ctx context.Context, limit, offset int) ([]BusinessWorker, int, error) {
	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM business_workers`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pg.Query(ctx,
		`SELECT `+workerColumns+` FROM business_workers ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []BusinessWorker
	for rows.Next() {
		var w BusinessWorker
		if err := rows.Scan(&w.ID, &w.SpecialistID, &w.ServiceID, &w.Position, &w.Bio, &w.YearsOfExperience, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, w)
	}
	return out, total, rows.Err()
}

func (r *Repo) DeleteWorker(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM business_workers WHERE id = $1`, id)
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
