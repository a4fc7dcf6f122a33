package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/notifications"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

type NotificationsHandler struct {
	logger *zap.Logger
	repo   *notifications.Repo
}

func NewNotificationsHandler(logger *zap.Logger, repo *notifications.Repo) *NotificationsHandler {
	return &NotificationsHandler{logger: logger, repo: repo}
}

type notificationReq struct {
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	Message string    `json:"message" binding:"required"`
	Type    string    `json:"type" binding:"required"`
}

func (h *NotificationsHandler) Create(c *gin.Context) {
	var req notificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "user_id, message and type are required")
		return
	}
	if !notifications.ValidType(req.Type) {
		resp.Error(c, http.StatusBadRequest, "invalid notification type")
		return
	}

	n := &notifications.Notification{
		UserID:  req.UserID,
		Message: req.Message,
		Type:    notifications.Type(req.Type),
	}
	if err := h.repo.Create(c.Request.Context(), n); err != nil {
		if errors.Is(err, notifications.ErrBadReference) {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("notification create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NotificationsHandler) List(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	f := notifications.ListFilter{Limit: limit, Offset: offset}
	if v := c.Query("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			resp.Error(c, http.StatusBadRequest, "invalid user_id")
			return
		}
		f.UserID = &id
	}
	if v := c.Query("is_read"); v != "" {
		read := v == "true" || v == "1"
		f.IsRead = &read
	}

	list, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("notification list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp.NewPage(list, page, limit, total))
}

func (h *NotificationsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	n, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Error("notification get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.MarkRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Error("notification mark-read failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

func (h *NotificationsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Error("notification delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
