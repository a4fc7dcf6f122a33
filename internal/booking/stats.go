package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// topLimit caps the top-clients/specialists/businesses reports.
const topLimit = 10

// ServiceCount is one row of the per-service appointment reports.
type ServiceCount struct {
	ServiceID         uuid.UUID `json:"service_id"`
	ServiceName       string    `json:"service_name"`
	TotalAppointments int       `json:"total_appointments"`
}

// UserCount is one row of the top-clients / top-specialists reports.
type UserCount struct {
	UserID            uuid.UUID `json:"-"`
	UserName          string    `json:"-"`
	TotalAppointments int       `json:"total_appointments"`
}

// BusinessCount is one row of the top-businesses report.
type BusinessCount struct {
	BusinessID        uuid.UUID `json:"business_id"`
	BusinessName      string    `json:"business_name"`
	TotalAppointments int       `json:"total_appointments"`
}

// CountByServiceBetween groups appointments created in [start, end] by
// service, most booked first.
func (r *Repo) CountByServiceBetween(ctx context.Context, start, end time.Time) ([]ServiceCount, error) {
	const q = `
SELECT a.service_id, sv.name, count(*) AS total
FROM appointments a
JOIN services sv ON sv.id = a.service_id
WHERE a.created_at >= $1 AND a.created_at <= $2
GROUP BY a.service_id, sv.name
ORDER BY total DESC`
	rows, err := r.pg.Query(ctx, q, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ServiceCount{}
	for rows.Next() {
		var s ServiceCount
		if err := rows.Scan(&s.ServiceID, &s.ServiceName, &s.TotalAppointments); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TopServices returns every service ordered by total appointments.
func (r *Repo) TopServices(ctx context.Context) ([]ServiceCount, error) {
	const q = `
SELECT a.service_id, sv.name, count(*) AS total
FROM appointments a
JOIN services sv ON sv.id = a.service_id
GROUP BY a.service_id, sv.name
ORDER BY total DESC`
	rows, err := r.pg.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ServiceCount{}
	for rows.Next() {
		var s ServiceCount
		if err := rows.Scan(&s.ServiceID, &s.ServiceName, &s.TotalAppointments); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TopClients returns the ten clients with the most appointments.
func (r *Repo) TopClients(ctx context.Context) ([]UserCount, error) {
	return r.topUsers(ctx, "client_id")
}

// TopSpecialists returns the ten specialists with the most appointments.
func (r *Repo) TopSpecialists(ctx context.Context) ([]UserCount, error) {
	return r.topUsers(ctx, "specialist_id")
}

func (r *Repo) topUsers(ctx context.Context, column string) ([]UserCount, error) {
	// column is one of two fixed identifiers, never user input.
	q := `
SELECT a.` + column + `, trim(u.first_name || ' ' || u.last_name), count(*) AS total
FROM appointments a
JOIN users u ON u.id = a.` + column + `
GROUP BY a.` + column + `, u.first_name, u.last_name
ORDER BY total DESC
LIMIT $1`
	rows, err := r.pg.Query(ctx, q, topLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserCount{}
	for rows.Next() {
		var u UserCount
		if err := rows.Scan(&u.UserID, &u.UserName, &u.TotalAppointments); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// TopBusinesses returns the ten businesses with the most appointments,
// counted through the service -> business join.
func (r *Repo) TopBusinesses(ctx context.Context) ([]BusinessCount, error) {
	const q = `
SELECT b.id, b.name, count(*) AS total
FROM appointments a
JOIN services sv ON sv.id = a.service_id
JOIN businesses b ON b.id = sv.business_id
GROUP BY b.id, b.name
ORDER BY total DESC
LIMIT $1`
	rows, err := r.pg.Query(ctx, q, topLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BusinessCount{}
	for rows.Next() {
		var b BusinessCount
		if err := rows.Scan(&b.BusinessID, &b.BusinessName, &b.TotalAppointments); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
