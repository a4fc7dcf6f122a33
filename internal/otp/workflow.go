// Package otp implements the phone-change workflow: an authenticated user
// adopts a new phone number only after proving receipt of a one-time code
// issued for that number. Per user the request moves through
// NoRequest -> Pending -> (Verified | Expired | Superseded).
package otp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Gulrukh07/BeautyShopBooking/internal/phone"
)

var (
	// ErrNotFound — no pending request for the verifying user (or it was
	// consumed by a concurrent verify).
	ErrNotFound = fmt.Errorf("no code request found")
	// ErrExpired — the pending request is older than the expiry window. The
	// record stays in place but is never matched again.
	ErrExpired = fmt.Errorf("code expired, request a new one")
	// ErrInvalidCode — submitted code does not match the stored one. No
	// attempt lockout is applied; each submission is checked independently.
	ErrInvalidCode = fmt.Errorf("invalid code")
	// ErrPhoneTaken — the candidate number already identifies another account.
	ErrPhoneTaken = fmt.Errorf("user with this phone number already exists")
)

// ThrottleError reports that a code for the same target number was issued
// too recently; RemainSeconds is how long the caller has to wait.
type ThrottleError struct {
	RemainSeconds int
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new code", e.RemainSeconds)
}

// Request is one outstanding attempt by a user to adopt a new phone number.
type Request struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	NewPhone  string
	Code      string
	CreatedAt time.Time
}

// Pending is what RequestChange hands back to the caller.
type Pending struct {
	Code      string
	ExpiresAt time.Time
}

// UserStore is the slice of the user repository the workflow needs.
type UserStore interface {
	PhoneExists(ctx context.Context, canonical string) (bool, error)
}

// RequestStore persists pending phone-change requests. At most one live
// request may exist per owner and per target number; Replace enforces that
// by superseding prior requests for either key inside one transaction.
type RequestStore interface {
	FindByOwner(ctx context.Context, owner uuid.UUID) (*Request, error)
	FindByTarget(ctx context.Context, newPhone string) (*Request, error)
	Replace(ctx context.Context, owner uuid.UUID, newPhone, code string, createdAt time.Time) (*Request, error)
	// ConsumeAndSetPhone atomically sets the owner's canonical phone to the
	// request target and deletes the request. When two verifiers race on the
	// same request exactly one succeeds; the loser gets ErrNotFound.
	ConsumeAndSetPhone(ctx context.Context, req *Request) error
}

// Config carries the workflow windows and the overridable clock/generator.
type Config struct {
	Expiry      time.Duration // code lifetime, checked lazily at verify time
	ResendAfter time.Duration // minimum spacing between codes per target number
	Now         func() time.Time
	GenerateCode func() (string, error)
}

// Service is the phone-change state machine over injected stores.
type Service struct {
	users    UserStore
	requests RequestStore
	cfg      Config
}

// NewService fills Config defaults (5 min expiry, 2 min resend spacing, wall
// clock, 6-digit random codes) and returns the workflow service.
func NewService(users UserStore, requests RequestStore, cfg Config) *Service {
	if cfg.Expiry <= 0 {
		cfg.Expiry = 5 * time.Minute
	}
	if cfg.ResendAfter <= 0 {
		cfg.ResendAfter = 2 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.GenerateCode == nil {
		cfg.GenerateCode = GenerateCode
	}
	return &Service{users: users, requests: requests, cfg: cfg}
}

// RequestChange validates the candidate number, applies the resend throttle
// and issues a fresh code, superseding any prior request for the same user
// or target number.
//
// The throttle is keyed by target number, not by user: that is the observed
// behavior of the booking service this replaces, kept as-is pending a
// product decision.
func (s *Service) RequestChange(ctx context.Context, userID uuid.UUID, rawNumber string) (*Pending, error) {
	canonical, err := phone.ValidateMobile(rawNumber)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.PhoneExists(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("phone uniqueness check: %w", err)
	}
	if taken {
		return nil, ErrPhoneTaken
	}

	now := s.cfg.Now()
	last, err := s.requests.FindByTarget(ctx, canonical)
	if err != nil && err != ErrNotFound {
		return nil, fmt.Errorf("find request by target: %w", err)
	}
	if last != nil {
		if wait := s.cfg.ResendAfter - now.Sub(last.CreatedAt); wait > 0 {
			return nil, &ThrottleError{RemainSeconds: int(wait.Seconds())}
		}
	}

	code, err := s.cfg.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}
	req, err := s.requests.Replace(ctx, userID, canonical, code, now)
	if err != nil {
		return nil, fmt.Errorf("store request: %w", err)
	}
	return &Pending{Code: req.Code, ExpiresAt: req.CreatedAt.Add(s.cfg.Expiry)}, nil
}

// VerifyChange checks the submitted code against the user's single pending
// request and, on match, commits the new canonical number and consumes the
// request. Expired requests are reported but left in place; cleanup is the
// next RequestChange's problem.
func (s *Service) VerifyChange(ctx context.Context, userID uuid.UUID, submittedCode string) (string, error) {
	req, err := s.requests.FindByOwner(ctx, userID)
	if err != nil {
		if err == ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find request by owner: %w", err)
	}

	if s.cfg.Now().Sub(req.CreatedAt) > s.cfg.Expiry {
		return "", ErrExpired
	}
	if strings.TrimSpace(submittedCode) != req.Code {
		return "", ErrInvalidCode
	}

	if err := s.requests.ConsumeAndSetPhone(ctx, req); err != nil {
		if err == ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("consume request: %w", err)
	}
	return req.NewPhone, nil
}
