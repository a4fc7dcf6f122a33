package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/server/handlers"
)

// Date validation runs before any repository access, so a nil repo is fine
// for the 400 paths.
func statsEnv() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewStatsHandler(zap.NewNop(), nil)
	r := gin.New()
	r.GET("/statistics/appointments", h.AppointmentsBetween)
	return r
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStatsRequiresStart(t *testing.T) {
	r := statsEnv()
	w := getPath(r, "/statistics/appointments")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsRejectsBadDates(t *testing.T) {
	r := statsEnv()

	w := getPath(r, "/statistics/appointments?start=2026-13-40")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = getPath(r, "/statistics/appointments?start=2026-01-10&end=not-a-date")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = getPath(r, "/statistics/appointments?start=2026-01-10&end=2026-01-01")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
