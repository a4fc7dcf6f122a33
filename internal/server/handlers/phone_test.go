package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/otp"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/handlers"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/mw"
)

// memoryStores mirror the Postgres store semantics so the endpoints are
// testable without a database.
type memoryStores struct {
	mu       sync.Mutex
	phones   map[uuid.UUID]string
	requests map[uuid.UUID]*otp.Request
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
	cur, ok := m.requests[req.OwnerID]
	if !ok || cur.ID != req.ID {
		return otp.ErrNotFound
	}
	delete(m.requests, req.OwnerID)
	m.phones[req.OwnerID] = req.NewPhone
	return nil
}

// phoneTestEnv wires the phone handler behind a gin engine with the caller
// identity injected, bypassing the JWT middleware.
func phoneTestEnv(t *testing.T, userID uuid.UUID, echo bool) (*gin.Engine, *memoryStores) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stores := newMemoryStores()
	svc := otp.NewService(stores, stores, otp.Config{
		GenerateCode: func() (string, error) { return "483920", nil },
	})
	h := handlers.NewPhoneHandler(zap.NewNop(), svc, echo)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(mw.CtxUserID, userID)
		c.Next()
	})
	r.POST("/users/change-phone", h.RequestChange)
	r.POST("/users/verify-phone", h.VerifyChange)
	return r, stores
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestChangeIssuesCode(t *testing.T) {
	userID := uuid.New()
	r, _ := phoneTestEnv(t, userID, true)

	w := postJSON(t, r, "/users/change-phone", gin.H{"new_phone_number": "90 123 45 67"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "verification code sent", body["message"])
	require.Equal(t, "483920", body["code"])
	require.NotEmpty(t, body["expires_at"])
}

func TestRequestChangeHidesCodeWhenEchoOff(t *testing.T) {
	r, _ := phoneTestEnv(t, uuid.New(), false)

	w := postJSON(t, r, "/users/change-phone", gin.H{"new_phone_number": "+998901234567"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	_, present := body["code"]
	require.False(t, present)
}

func TestRequestChangeRejectsBadNumber(t *testing.T) {
	r, _ := phoneTestEnv(t, uuid.New(), true)

	for _, raw := range []string{"12 345 67 89", "9012345", "abc"} {
		w := postJSON(t, r, "/users/change-phone", gin.H{"new_phone_number": raw})
		require.Equal(t, http.StatusBadRequest, w.Code, "input %q", raw)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotEmpty(t, body["error"])
	}
}

func TestRequestChangeConflictOnTakenNumber(t *testing.T) {
	userID := uuid.New()
	r, stores := phoneTestEnv(t, userID, true)
	stores.phones[uuid.New()] = "+998901234567"

	w := postJSON(t, r, "/users/change-phone", gin.H{"new_phone_number": "901234567"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestChangeThrottleBody(t *testing.T) {
	userID := uuid.New()
	r, _ := phoneTestEnv(t, userID, true)

	w := postJSON(t, r, "/users/change-phone", gin.H{"new_phone_number": "901234567"})
	require.Equal(t, http.StatusOK, w.Code)

	// Second request inside the resend window answers 200 with remain_seconds.
	w = postJSON(t, r, "/users/change-phone", gin.H{"new_phone_number": "901234567"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["error"])
	remain, ok := body["remain_seconds"].(float64)
	require.True(t, ok)
	require.Greater(t, remain, float64(0))
}

func TestVerifyChangeHappyPath(t *testing.T) {
	userID := uuid.New()
	r, stores := phoneTestEnv(t, userID, true)

	w := postJSON(t, r, "/users/change-phone", gin.H{"new_phone_number": "+998 90 123 45 67"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/users/verify-phone", gin.H{"code": "483920"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "+998901234567", body["new_phone_number"])
	require.Equal(t, float64(http.StatusOK), body["status_code"])
	require.Equal(t, "+998901234567", stores.phones[userID])
}

func TestVerifyChangeNoRequest(t *testing.T) {
	r, _ := phoneTestEnv(t, uuid.New(), true)

	w := postJSON(t, r, "/users/verify-phone", gin.H{"code": "483920"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyChangeWrongCode(t *testing.T) {
	userID := uuid.New()
	r, _ := phoneTestEnv(t, userID, true)

	w := postJSON(t, r, "/users/change-phone", gin.H{"new_phone_number": "901234567"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/users/verify-phone", gin.H{"code": "000000"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
