package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/reviews"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

type ReviewsHandler struct {
	logger *zap.Logger
	repo   *reviews.Repo
}

func NewReviewsHandler(logger *zap.Logger, repo *reviews.Repo) *ReviewsHandler {
	return &ReviewsHandler{logger: logger, repo: repo}
}

type reviewReq struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
	ClientID      uuid.UUID `json:"client_id" binding:"required"`
	Rating        int       `json:"rating" binding:"required"`
	Comment       *string   `json:"comment"`
}

func (h *ReviewsHandler) Create(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "appointment_id, client_id and rating are required")
		return
	}
	if !reviews.ValidRating(req.Rating) {
		resp.Error(c, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	v := &reviews.Review{
		AppointmentID: req.AppointmentID,
		ClientID:      req.ClientID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := h.repo.Create(c.Request.Context(), v); err != nil {
		if errors.Is(err, reviews.ErrBadReference) {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("review create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *ReviewsHandler) List(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	list, total, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("review list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp.NewPage(list, page, limit, total))
}

func (h *ReviewsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	v, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "review not found")
			return
		}
		h.logger.Error("review get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ReviewsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "review not found")
			return
		}
		h.logger.Error("review delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
