package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/booking"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

type AppointmentsHandler struct {
	logger *zap.Logger
	repo   *booking.Repo
}

func NewAppointmentsHandler(logger *zap.Logger, repo *booking.Repo) *AppointmentsHandler {
	return &AppointmentsHandler{logger: logger, repo: repo}
}

type appointmentReq struct {
	SpecialistID uuid.UUID `json:"specialist_id" binding:"required"`
	ClientID     uuid.UUID `json:"client_id" binding:"required"`
	ServiceID    uuid.UUID `json:"service_id" binding:"required"`
	Status       string    `json:"status"`
}

func (h *AppointmentsHandler) Create(c *gin.Context) {
	var req appointmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "specialist_id, client_id and service_id are required")
		return
	}
	if req.Status == "" {
		req.Status = string(booking.StatusPending)
	}
	if !booking.ValidStatus(req.Status) {
		resp.Error(c, http.StatusBadRequest, "invalid status")
		return
	}

	a := &booking.Appointment{
		SpecialistID: req.SpecialistID,
		ClientID:     req.ClientID,
		ServiceID:    req.ServiceID,
		Status:       booking.Status(req.Status),
	}
	if err := h.repo.Create(c.Request.Context(), a); err != nil {
		if errors.Is(err, booking.ErrBadReference) {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("appointment create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AppointmentsHandler) List(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	f := booking.ListFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("specialist_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			resp.Error(c, http.StatusBadRequest, "invalid specialist_id")
			return
		}
		f.SpecialistID = &id
	}
	if v := c.Query("client_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			resp.Error(c, http.StatusBadRequest, "invalid client_id")
			return
		}
		f.ClientID = &id
	}

	list, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("appointment list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp.NewPage(list, page, limit, total))
}

func (h *AppointmentsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	a, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "appointment not found")
			return
		}
		h.logger.Error("appointment get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, a)
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentsHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "status is required")
		return
	}
	if !booking.ValidStatus(req.Status) {
		resp.Error(c, http.StatusBadRequest, "invalid status")
		return
	}

	a, err := h.repo.UpdateStatus(c.Request.Context(), id, booking.Status(req.Status))
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "appointment not found")
			return
		}
		h.logger.Error("appointment status update failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AppointmentsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "appointment not found")
			return
		}
		h.logger.Error("appointment delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
