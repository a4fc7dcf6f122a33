package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("business not found")

type Repo struct {
	pg *pgxpool.Pool
}

func NewRepo(pg *pgxpool.Pool) *Repo {
	return &Repo{pg: pg}
}

const columns = `id, name, description, type, address, latitude, longitude, contact, opening_hours, is_active, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, b *Business) error {
	const q = `
INSERT INTO businesses (name, description, type, address, latitude, longitude, contact, opening_hours, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at`
	return r.pg.QueryRow(ctx, q,
		b.Name, b.Description, b.Type, b.Address, b.Latitude, b.Longitude, b.Contact, b.OpeningHours, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*Business, error) {
	row := r.pg.QueryRow(ctx, `SELECT `+columns+` FROM businesses WHERE id = $1`, id)
	b, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// ListFilter narrows and pages the business list. Search matches name,
// description or type.
type ListFilter struct {
	Type     string
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Business, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR type ILIKE $%d)", n, n, n))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pg.QueryRow(ctx, `SELECT count(*) FROM businesses`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT `+columns+` FROM businesses%s ORDER BY created_at LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))
	rows, err := r.pg.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Business
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *b)
	}
	return out, total, rows.Err()
}

func (r *Repo) Update(ctx context.Context, b *Business) error {
	const q = `
UPDATE businesses
SET name = $2, description = $3, type = $4, address = $5, latitude = $6, longitude = $7,
    contact = $8, opening_hours = $9, is_active = $10, updated_at = now()
WHERE id = $1
RETURNING updated_at`
	err := r.pg.QueryRow(ctx, q,
		b.ID, b.Name, b.Description, b.Type, b.Address, b.Latitude, b.Longitude, b.Contact, b.OpeningHours, b.IsActive,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pg.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scan(row pgx.Row) (*Business, error) {
	var b Business
	err := row.Scan(
		&b.ID, &b.Name, &b.Description, &b.Type, &b.Address, &b.Latitude, &b.Longitude,
		&b.Contact, &b.OpeningHours, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
