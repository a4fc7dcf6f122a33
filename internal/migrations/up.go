package migrations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UpUsers creates the users table.
func UpUsers(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'client'
				CHECK (role IN ('client', 'specialist', 'admin')),
			avatar TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
	`)
	return err
}

// UpBusinesses creates the businesses table.
func UpBusinesses(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS businesses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL
				CHECK (type IN ('clinic', 'barbershop', 'beautyshop', 'sport')),
			address TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			contact TEXT,
			opening_hours JSONB,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_businesses_type ON businesses(type);
	`)
	return err
}

// UpCatalog creates services, sub_services, specialist_services and
// business_workers.
func UpCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS services (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT,
			business_id UUID NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_services_business ON services(business_id);

		CREATE TABLE IF NOT EXISTS sub_services (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT,
			service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
			specialist_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_sub_services_service ON sub_services(service_id);

		CREATE TABLE IF NOT EXISTS specialist_services (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			specialist_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			sub_service_id UUID NOT NULL REFERENCES sub_services(id) ON DELETE CASCADE,
			price BIGINT NOT NULL DEFAULT 0,
			duration BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (specialist_id, sub_service_id)
		);

		CREATE TABLE IF NOT EXISTS business_workers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			specialist_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
			position TEXT NOT NULL DEFAULT '',
			bio TEXT,
			years_of_experience BIGINT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (specialist_id, service_id)
		);
	`)
	return err
}

// UpAppointments creates the appointments table.
func UpAppointments(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS appointments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			specialist_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			client_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'approved', 'rejected', 'canceled', 'moved')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_appointments_specialist ON appointments(specialist_id);
		CREATE INDEX IF NOT EXISTS idx_appointments_client ON appointments(client_id);
		CREATE INDEX IF NOT EXISTS idx_appointments_created_at ON appointments(created_at);
	`)
	return err
}

// UpReviewsNotifications creates reviews and notifications.
func UpReviewsNotifications(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			appointment_id UUID NOT NULL REFERENCES appointments(id) ON DELETE CASCADE,
			client_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (appointment_id, client_id)
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			message TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'booking'
				CHECK (type IN ('booking', 'reminder', 'cancelled')),
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);
	`)
	return err
}

// UpSchedules creates work_schedules and time_offs.
func UpSchedules(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS work_schedules (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			specialist_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			start_time TIME NOT NULL,
			end_time TIME NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_work_schedules_specialist ON work_schedules(specialist_id);

		CREATE TABLE IF NOT EXISTS time_offs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			specialist_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			work_schedule_id UUID NOT NULL REFERENCES work_schedules(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			reason TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_time_offs_specialist ON time_offs(specialist_id);
	`)
	return err
}

// UpPhoneChangeRequests creates phone_change_requests. The UNIQUE
// constraints on owner_id and new_phone keep at most one live request
// per user and per target number.
func UpPhoneChangeRequests(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS phone_change_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			new_phone TEXT NOT NULL UNIQUE,
			code TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}
