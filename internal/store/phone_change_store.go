// Package store holds Postgres-backed state stores for short-lived workflow
// records.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gulrukh07/BeautyShopBooking/internal/otp"
)

// PhoneChangeStore persists pending phone-change requests in Postgres. The
// single-live-request invariant is held by unique constraints on owner_id
// and new_phone plus delete-then-insert inside one transaction, so racing
// RequestChange calls cannot leave two live rows.
type PhoneChangeStore struct {
	pg *pgxpool.Pool
}

func NewPhoneChangeStore(pg *pgxpool.Pool) *PhoneChangeStore {
	return &PhoneChangeStore{pg: pg}
}

func (s *PhoneChangeStore) FindByOwner(ctx context.Context, owner uuid.UUID) (*otp.Request, error) {
	const q = `
SELECT id, owner_id, new_phone, code, created_at
FROM phone_change_requests
WHERE owner_id = $1`
	return scanRequest(s.pg.QueryRow(ctx, q, owner))
}

func (s *PhoneChangeStore) FindByTarget(ctx context.Context, newPhone string) (*otp.Request, error) {
	const q = `
SELECT id, owner_id, new_phone, code, created_at
FROM phone_change_requests
WHERE new_phone = $1`
	return scanRequest(s.pg.QueryRow(ctx, q, newPhone))
}

// Replace supersedes any live request for the same owner or target number
// and inserts the fresh one, all in one transaction.
func (s *PhoneChangeStore) Replace(ctx context.Context, owner uuid.UUID, newPhone, code string, createdAt time.Time) (*otp.Request, error) {
	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM phone_change_requests WHERE owner_id = $1 OR new_phone = $2`,
		owner, newPhone,
	); err != nil {
		return nil, fmt.Errorf("supersede: %w", err)
	}

	req := &otp.Request{OwnerID: owner, NewPhone: newPhone, Code: code, CreatedAt: createdAt}
	err = tx.QueryRow(ctx, `
INSERT INTO phone_change_requests (owner_id, new_phone, code, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`,
		owner, newPhone, code, createdAt,
	).Scan(&req.ID)
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return req, nil
}

// ConsumeAndSetPhone deletes the request row and commits the new canonical
// number to the owner in one transaction. The DELETE ... RETURNING runs
// first: of two concurrent verifiers exactly one gets the row, the other
// sees otp.ErrNotFound.
func (s *PhoneChangeStore) ConsumeAndSetPhone(ctx context.Context, req *otp.Request) error {
	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID uuid.UUID
	var newPhone string
	err = tx.QueryRow(ctx, `
DELETE FROM phone_change_requests
WHERE id = $1
RETURNING owner_id, new_phone`,
		req.ID,
	).Scan(&ownerID, &newPhone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return otp.ErrNotFound
		}
		return fmt.Errorf("consume: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET phone_number = $2, updated_at = now() WHERE id = $1`,
		ownerID, newPhone,
	); err != nil {
		return fmt.Errorf("set phone: %w", err)
	}

	return tx.Commit(ctx)
}

func scanRequest(row pgx.Row) (*otp.Request, error) {
	var r otp.Request
	err := row.Scan(&r.ID, &r.OwnerID, &r.NewPhone, &r.Code, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, otp.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}
