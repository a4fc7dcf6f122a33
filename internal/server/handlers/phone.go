package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/otp"
	"github.com/Gulrukh07/BeautyShopBooking/internal/phone"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/mw"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

// PhoneHandler exposes the phone-change workflow. There is no SMS channel
// yet: when echoCode is on the issued code travels back in the response so
// staging clients can complete the flow.
type PhoneHandler struct {
	logger   *zap.Logger
	svc      *otp.Service
	echoCode bool
}

func NewPhoneHandler(logger *zap.Logger, svc *otp.Service, echoCode bool) *PhoneHandler {
	return &PhoneHandler{logger: logger, svc: svc, echoCode: echoCode}
}

type changePhoneReq struct {
	NewPhoneNumber string `json:"new_phone_number" binding:"required"`
}

func (h *PhoneHandler) RequestChange(c *gin.Context) {
	var req changePhoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "new_phone_number is required")
		return
	}

	pending, err := h.svc.RequestChange(c.Request.Context(), mw.UserID(c), req.NewPhoneNumber)
	if err != nil {
		var throttled *otp.ThrottleError
		switch {
		case errors.As(err, &throttled):
			// Throttling is reported with 200, matching the client contract.
			c.JSON(http.StatusOK, gin.H{
				"error":          throttled.Error(),
				"remain_seconds": throttled.RemainSeconds,
			})
		case errors.Is(err, phone.ErrInvalidFormat), errors.Is(err, phone.ErrDisallowedPrefix):
			resp.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, otp.ErrPhoneTaken):
			resp.Error(c, http.StatusConflict, err.Error())
		default:
			h.logger.Error("phone change request failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	body := gin.H{
		"message":    "verification code sent",
		"expires_at": pending.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if h.echoCode {
		body["code"] = pending.Code
	}
	c.JSON(http.StatusOK, body)
}

type verifyPhoneReq struct {
	Code string `json:"code" binding:"required"`
}

func (h *PhoneHandler) VerifyChange(c *gin.Context) {
	var req verifyPhoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "code is required")
		return
	}

	newPhone, err := h.svc.VerifyChange(c.Request.Context(), mw.UserID(c), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrNotFound):
			resp.Error(c, http.StatusNotFound, err.Error())
		case errors.Is(err, otp.ErrExpired), errors.Is(err, otp.ErrInvalidCode):
			resp.Error(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("phone change verify failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "phone number updated",
		"new_phone_number": newPhone,
		"status_code":      http.StatusOK,
	})
}
