package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gulrukh07/BeautyShopBooking/internal/security"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
	"github.com/Gulrukh07/BeautyShopBooking/internal/users"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// RequireUser checks the Bearer access token and stores the caller's id and
// role in the gin context.
func RequireUser(jwtm *security.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			resp.Error(c, http.StatusUnauthorized, "missing Authorization header")
			c.Abort()
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")
		id, role, err := jwtm.ParseAccess(raw)
		if err != nil || id == uuid.Nil {
			resp.Error(c, http.StatusUnauthorized, "invalid access token")
			c.Abort()
			return
		}
		c.Set(CtxUserID, id)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != string(users.RoleAdmin) {
			resp.Error(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the caller's id set by RequireUser.
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
