package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/booking"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

type StatsHandler struct {
	logger *zap.Logger
	repo   *booking.Repo
}

func NewStatsHandler(logger *zap.Logger, repo *booking.Repo) *StatsHandler {
	return &StatsHandler{logger: logger, repo: repo}
}

const dateLayout = "2006-01-02"

// AppointmentsBetween counts appointments per service in an inclusive date
// range. Missing end means the same day as start.
func (h *StatsHandler) AppointmentsBetween(c *gin.Context) {
	rawStart := c.Query("start")
	if rawStart == "" {
		resp.Error(c, http.StatusBadRequest, "start is required (YYYY-MM-DD)")
		return
	}
	start, err := time.Parse(dateLayout, rawStart)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}

	end := start
	if rawEnd := c.Query("end"); rawEnd != "" {
		end, err = time.Parse(dateLayout, rawEnd)
		if err != nil {
			resp.Error(c, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return
		}
	}
	if end.Before(start) {
		resp.Error(c, http.StatusBadRequest, "end must not be before start")
		return
	}
	// End of the last day, inclusive.
	endOfDay := end.Add(24*time.Hour - time.Microsecond)

	rowsOut, err := h.repo.CountByServiceBetween(c.Request.Context(), start, endOfDay)
	if err != nil {
		h.logger.Error("appointment stats failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"start": start.Format(dateLayout),
		"end":   end.Format(dateLayout),
		"items": rowsOut,
	})
}

func (h *StatsHandler) TopServices(c *gin.Context) {
	rows, err := h.repo.TopServices(c.Request.Context())
	if err != nil {
		h.logger.Error("top services failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func (h *StatsHandler) TopClients(c *gin.Context) {
	rows, err := h.repo.TopClients(c.Request.Context())
	if err != nil {
		h.logger.Error("top clients failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		items = append(items, gin.H{
			"client_id":          r.UserID,
			"client_name":        r.UserName,
			"total_appointments": r.TotalAppointments,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *StatsHandler) TopSpecialists(c *gin.Context) {
	rows, err := h.repo.TopSpecialists(c.Request.Context())
	if err != nil {
		h.logger.Error("top specialists failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	items := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		items = append(items, gin.H{
			"specialist_id":      r.UserID,
			"specialist_name":    r.UserName,
			"total_appointments": r.TotalAppointments,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *StatsHandler) TopBusinesses(c *gin.Context) {
	rows, err := h.repo.TopBusinesses(c.Request.Context())
	if err != nil {
		h.logger.Error("top businesses failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}
