package mw_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Gulrukh07/BeautyShopBooking/internal/security"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/mw"
)

func authEnv(jwtm *security.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("", mw.RequireUser(jwtm))
	authed.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": mw.UserID(c),
			"role":    c.GetString(mw.CtxRole),
		})
	})
	authed.GET("/admin-only", mw.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUserRejectsMissingToken(t *testing.T) {
	jwtm := security.NewJWTManager("test-secret", time.Minute, time.Hour)
	r := authEnv(jwtm)

	w := get(r, "/whoami", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserRejectsGarbage(t *testing.T) {
	jwtm := security.NewJWTManager("test-secret", time.Minute, time.Hour)
	r := authEnv(jwtm)

	w := get(r, "/whoami", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserAcceptsValidToken(t *testing.T) {
	jwtm := security.NewJWTManager("test-secret", time.Minute, time.Hour)
	r := authEnv(jwtm)

	tokens, err := jwtm.Issue("client", uuid.New())
	require.NoError(t, err)

	w := get(r, "/whoami", tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"role":"client"`)
}

func TestRequireAdminBlocksClients(t *testing.T) {
	jwtm := security.NewJWTManager("test-secret", time.Minute, time.Hour)
	r := authEnv(jwtm)

	clientTokens, err := jwtm.Issue("client", uuid.New())
	require.NoError(t, err)
	w := get(r, "/admin-only", clientTokens.AccessToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	adminTokens, err := jwtm.Issue("admin", uuid.New())
	require.NoError(t, err)
	w = get(r, "/admin-only", adminTokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
}
