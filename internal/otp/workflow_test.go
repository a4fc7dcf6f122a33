package otp_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Gulrukh07/BeautyShopBooking/internal/otp"
	"github.com/Gulrukh07/BeautyShopBooking/internal/phone"
)

// memoryStores back the workflow with maps so the state machine is testable
// without Postgres. Consume semantics mirror the SQL implementation: exactly
// one of two racing verifiers wins.
type memoryStores struct {
	mu       sync.Mutex
	phones   map[uuid.UUID]string
	requests map[uuid.UUID]*otp.Request // keyed by owner
}

func newMemoryStores() *memoryStores {
	return &memoryStores{
		phones:   make(map[uuid.UUID]string),
		requests: make(map[uuid.UUID]*otp.Request),
	}
}

func (m *memoryStores) PhoneExists(_ context.Context, canonical string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.phones {
		if p == canonical {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStores) FindByOwner(_ context.Context, owner uuid.UUID) (*otp.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.requests[owner]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, otp.ErrNotFound
}

func (m *memoryStores) FindByTarget(_ context.Context, newPhone string) (*otp.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.NewPhone == newPhone {
			cp := *r
			return &cp, nil
		}
	}
	return nil, otp.ErrNotFound
}

func (m *memoryStores) Replace(_ context.Context, owner uuid.UUID, newPhone, code string, createdAt time.Time) (*otp.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for o, r := range m.requests {
		if o == owner || r.NewPhone == newPhone {
			delete(m.requests, o)
		}
	}
	req := &otp.Request{ID: uuid.New(), OwnerID: owner, NewPhone: newPhone, Code: code, CreatedAt: createdAt}
	m.requests[owner] = req
	cp := *req
	return &cp, nil
}

func (m *memoryStores) ConsumeAndSetPhone(_ context.Context, req *otp.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.requests[req.OwnerID]
	if !ok || current.ID != req.ID {
		return otp.ErrNotFound
	}
	m.phones[req.OwnerID] = req.NewPhone
	delete(m.requests, req.OwnerID)
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (*otp.Service, *memoryStores, *fakeClock) {
	t.Helper()
	stores := newMemoryStores()
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codes := []string{"483920", "771204", "115533"}
	svc := otp.NewService(stores, stores, otp.Config{
		Expiry:      5 * time.Minute,
		ResendAfter: 2 * time.Minute,
		Now:         clock.Now,
		GenerateCode: func() (string, error) {
			code := codes[0]
			if len(codes) > 1 {
				codes = codes[1:]
			}
			return code, nil
		},
	})
	return svc, stores, clock
}

func TestRequestChangeIssuesCode(t *testing.T) {
	svc, _, clock := newTestService(t)
	user := uuid.New()

	pending, err := svc.RequestChange(context.Background(), user, "+998 99 222 22 22")
	require.NoError(t, err)
	require.Equal(t, "483920", pending.Code)
	require.Equal(t, clock.Now().Add(5*time.Minute), pending.ExpiresAt)
}

func TestRequestChangeRejectsBadNumbers(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := uuid.New()

	_, err := svc.RequestChange(context.Background(), user, "not a number")
	require.ErrorIs(t, err, phone.ErrInvalidFormat)

	_, err = svc.RequestChange(context.Background(), user, "+998123456789")
	require.ErrorIs(t, err, phone.ErrDisallowedPrefix)
}

func TestRequestChangeRejectsTakenNumber(t *testing.T) {
	svc, stores, _ := newTestService(t)
	other := uuid.New()
	stores.phones[other] = "+998992222222"

	_, err := svc.RequestChange(context.Background(), uuid.New(), "99 222 22 22")
	require.ErrorIs(t, err, otp.ErrPhoneTaken)
}

func TestRequestChangeThrottlesSameTarget(t *testing.T) {
	svc, _, clock := newTestService(t)
	user := uuid.New()

	first, err := svc.RequestChange(context.Background(), user, "+998992222222")
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	_, err = svc.RequestChange(context.Background(), user, "998 99 222 22 22")
	var throttled *otp.ThrottleError
	require.ErrorAs(t, err, &throttled)
	require.Equal(t, 90, throttled.RemainSeconds)

	// After the window the resend succeeds and invalidates the prior code.
	clock.Advance(100 * time.Second)
	second, err := svc.RequestChange(context.Background(), user, "+998992222222")
	require.NoError(t, err)
	require.NotEqual(t, first.Code, second.Code)

	_, err = svc.VerifyChange(context.Background(), user, first.Code)
	require.ErrorIs(t, err, otp.ErrInvalidCode)
}

func TestRequestChangeDifferentTargetBypassesThrottle(t *testing.T) {
	// Throttling is keyed by target number only; a user switching candidate
	// numbers is not throttled. Observed behavior of the original service.
	svc, _, _ := newTestService(t)
	user := uuid.New()

	_, err := svc.RequestChange(context.Background(), user, "+998992222222")
	require.NoError(t, err)
	_, err = svc.RequestChange(context.Background(), user, "+998903333333")
	require.NoError(t, err)
}

func TestVerifyChangeHappyPath(t *testing.T) {
	svc, stores, _ := newTestService(t)
	user := uuid.New()
	stores.phones[user] = "+998901111111"

	pending, err := svc.RequestChange(context.Background(), user, "+998 99 222 22 22")
	require.NoError(t, err)

	_, err = svc.VerifyChange(context.Background(), user, "000000")
	require.ErrorIs(t, err, otp.ErrInvalidCode)

	newPhone, err := svc.VerifyChange(context.Background(), user, pending.Code)
	require.NoError(t, err)
	require.Equal(t, "+998992222222", newPhone)
	require.Equal(t, "+998992222222", stores.phones[user])

	// The request is consumed: replaying the same code finds nothing.
	_, err = svc.VerifyChange(context.Background(), user, pending.Code)
	require.ErrorIs(t, err, otp.ErrNotFound)
}

func TestVerifyChangeNoRequest(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.VerifyChange(context.Background(), uuid.New(), "123456")
	require.ErrorIs(t, err, otp.ErrNotFound)
}

func TestVerifyChangeExpired(t *testing.T) {
	svc, stores, clock := newTestService(t)
	user := uuid.New()

	pending, err := svc.RequestChange(context.Background(), user, "+998992222222")
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	_, err = svc.VerifyChange(context.Background(), user, pending.Code)
	require.ErrorIs(t, err, otp.ErrExpired)

	// The record is left in place for the next RequestChange to supersede.
	_, err = stores.FindByOwner(context.Background(), user)
	require.NoError(t, err)
}

func TestVerifyChangeRaceSingleWinner(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := uuid.New()

	pending, err := svc.RequestChange(context.Background(), user, "+998992222222")
	require.NoError(t, err)

	const racers = 8
	results := make(chan error, racers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < racers; i++ {
		go func() {
			start.Wait()
			_, err := svc.VerifyChange(context.Background(), user, pending.Code)
			results <- err
		}()
	}
	start.Done()

	wins := 0
	for i := 0; i < racers; i++ {
		if err := <-results; err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, otp.ErrNotFound)
		}
	}
	require.Equal(t, 1, wins)
}

func TestGenerateCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := otp.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	// collision-resistant enough for a test: 50 draws should not all collide
	require.Greater(t, len(seen), 1)
}
