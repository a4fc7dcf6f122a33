package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/schedule"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

type SchedulesHandler struct {
	logger *zap.Logger
	repo   *schedule.Repo
}

func NewSchedulesHandler(logger *zap.Logger, repo *schedule.Repo) *SchedulesHandler {
	return &SchedulesHandler{logger: logger, repo: repo}
}

// --- work schedules ---

type workScheduleReq struct {
	SpecialistID uuid.UUID `json:"specialist_id" binding:"required"`
	StartTime    string    `json:"start_time" binding:"required"`
	EndTime      string    `json:"end_time" binding:"required"`
	IsActive     *bool     `json:"is_active"`
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func (h *SchedulesHandler) CreateWorkSchedule(c *gin.Context) {
	var req workScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "specialist_id, start_time and end_time are required")
		return
	}
	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		resp.Error(c, http.StatusBadRequest, "start_time and end_time must be HH:MM")
		return
	}

	w := &schedule.WorkSchedule{
		SpecialistID: req.SpecialistID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsActive:     true,
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	if err := h.repo.CreateWorkSchedule(c.Request.Context(), w); err != nil {
		if errors.Is(err, schedule.ErrBadReference) {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("work schedule create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *SchedulesHandler) ListWorkSchedules(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	var specialistID *uuid.UUID
	if v := c.Query("specialist_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			resp.Error(c, http.StatusBadRequest, "invalid specialist_id")
			return
		}
		specialistID = &id
	}

	list, total, err := h.repo.ListWorkSchedules(c.Request.Context(), specialistID, limit, offset)
	if err != nil {
		h.logger.Error("work schedule list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp.NewPage(list, page, limit, total))
}

func (h *SchedulesHandler) GetWorkSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	w, err := h.repo.FindWorkScheduleByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "work schedule not found")
			return
		}
		h.logger.Error("work schedule get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *SchedulesHandler) DeleteWorkSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteWorkSchedule(c.Request.Context(), id); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "work schedule not found")
			return
		}
		h.logger.Error("work schedule delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- time off ---

type timeOffReq struct {
	SpecialistID   uuid.UUID `json:"specialist_id" binding:"required"`
	WorkScheduleID uuid.UUID `json:"work_schedule_id" binding:"required"`
	Date           string    `json:"date" binding:"required"`
	Reason         *string   `json:"reason"`
}

func (h *SchedulesHandler) CreateTimeOff(c *gin.Context) {
	var req timeOffReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "specialist_id, work_schedule_id and date are required")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	t := &schedule.TimeOff{
		SpecialistID:   req.SpecialistID,
		WorkScheduleID: req.WorkScheduleID,
		Date:           date,
		Reason:         req.Reason,
	}
	if err := h.repo.CreateTimeOff(c.Request.Context(), t); err != nil {
		if errors.Is(err, schedule.ErrBadReference) {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("time off create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *SchedulesHandler) ListTimeOffs(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	var specialistID *uuid.UUID
	if v := c.Query("specialist_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			resp.Error(c, http.StatusBadRequest, "invalid specialist_id")
			return
		}
		specialistID = &id
	}

	list, total, err := h.repo.ListTimeOffs(c.Request.Context(), specialistID, limit, offset)
	if err != nil {
		h.logger.Error("time off list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp.NewPage(list, page, limit, total))
}

func (h *SchedulesHandler) DeleteTimeOff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteTimeOff(c.Request.Context(), id); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "time off not found")
			return
		}
		h.logger.Error("time off delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
