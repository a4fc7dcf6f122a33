// Package migrations runs the schema migrations in Go; order is fixed by the
// list below. Every migration is idempotent, so Up can run on every start.
package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Runner applies migrations in order.
type Runner struct {
	pool *pgxpool.Pool
}

// NewRunner creates a migration runner for the pool.
func NewRunner(pool *pgxpool.Pool) *Runner {
	return &Runner{pool: pool}
}

// Up applies every migration in order.
func (r *Runner) Up(ctx context.Context) error {
	for i, m := range migrations {
		if err := m.Up(ctx, r.pool); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i, m.Name, err)
		}
	}
	return nil
}

type migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migration list: order matters.
var migrations = []migration{
	{Name: "create_users", Up: UpUsers},
	{Name: "create_businesses", Up: UpBusinesses},
	{Name: "create_catalog", Up: UpCatalog},
	{Name: "create_appointments", Up: UpAppointments},
	{Name: "create_reviews_notifications", Up: UpReviewsNotifications},
	{Name: "create_schedules", Up: UpSchedules},
	{Name: "create_phone_change_requests", Up: UpPhoneChangeRequests},
}
