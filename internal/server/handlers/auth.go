package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/phone"
	"github.com/Gulrukh07/BeautyShopBooking/internal/security"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
	"github.com/Gulrukh07/BeautyShopBooking/internal/users"
	"github.com/Gulrukh07/BeautyShopBooking/internal/util"
)

type AuthHandler struct {
	logger *zap.Logger
	users  *users.Repo
	jwtm   *security.JWTManager
}

func NewAuthHandler(logger *zap.Logger, usersRepo *users.Repo, jwtm *security.JWTManager) *AuthHandler {
	return &AuthHandler{logger: logger, users: usersRepo, jwtm: jwtm}
}

type loginReq struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "phone_number and password are required")
		return
	}

	canonical, err := phone.ValidateMobile(req.PhoneNumber)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.FindByPhone(c.Request.Context(), canonical)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusUnauthorized, "invalid phone number or password")
			return
		}
		h.logger.Error("login lookup failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if !util.ComparePassword(u.PasswordHash, req.Password) {
		resp.Error(c, http.StatusUnauthorized, "invalid phone number or password")
		return
	}

	tokens, err := h.jwtm.Issue(string(u.Role), u.ID)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        tokens,
		"message":     "success",
	})
}

type refreshReq struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "refresh is required")
		return
	}

	claims, err := h.jwtm.ParseRefresh(req.Refresh)
	if err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	// Re-read the user so a role change or deletion invalidates old refresh
	// tokens at rotation time.
	u, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		h.logger.Error("refresh lookup failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	tokens, err := h.jwtm.Issue(string(u.Role), u.ID)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        tokens,
		"message":     "success",
	})
}
