package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/business"
	"github.com/Gulrukh07/BeautyShopBooking/internal/catalog"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

type BusinessesHandler struct {
	logger  *zap.Logger
	repo    *business.Repo
	catalog *catalog.Repo
}

func NewBusinessesHandler(logger *zap.Logger, repo *business.Repo, catalogRepo *catalog.Repo) *BusinessesHandler {
	return &BusinessesHandler{logger: logger, repo: repo, catalog: catalogRepo}
}

// businessView embeds the venue's services into the business payload.
type businessView struct {
	*business.Business
	Services []catalog.Service `json:"services"`
}

type businessReq struct {
	Name         string          `json:"name" binding:"required"`
	Description  *string         `json:"description"`
	Type         string          `json:"type" binding:"required"`
	Address      string          `json:"address"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Contact      *string         `json:"contact"`
	OpeningHours json.RawMessage `json:"opening_hours"`
	IsActive     *bool           `json:"is_active"`
}

func (h *BusinessesHandler) Create(c *gin.Context) {
	var req businessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "name and type are required")
		return
	}
	if !business.ValidType(req.Type) {
		resp.Error(c, http.StatusBadRequest, "invalid business type")
		return
	}

	b := &business.Business{
		Name:         req.Name,
		Description:  req.Description,
		Type:         business.Type(req.Type),
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Contact:      req.Contact,
		OpeningHours: req.OpeningHours,
		IsActive:     true,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := h.repo.Create(c.Request.Context(), b); err != nil {
		h.logger.Error("business create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, businessView{Business: b, Services: []catalog.Service{}})
}

func (h *BusinessesHandler) List(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	f := business.ListFilter{
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true" || v == "1"
		f.IsActive = &active
	}

	list, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("business list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	views := make([]businessView, 0, len(list))
	for i := range list {
		services, err := h.catalog.ListServicesForBusiness(c.Request.Context(), list[i].ID)
		if err != nil {
			h.logger.Error("business services lookup failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		views = append(views, businessView{Business: &list[i], Services: services})
	}
	c.JSON(http.StatusOK, resp.NewPage(views, page, limit, total))
}

func (h *BusinessesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "business not found")
			return
		}
		h.logger.Error("business get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	services, err := h.catalog.ListServicesForBusiness(c.Request.Context(), b.ID)
	if err != nil {
		h.logger.Error("business services lookup failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, businessView{Business: b, Services: services})
}

func (h *BusinessesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "business not found")
			return
		}
		h.logger.Error("business get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	var req businessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if !business.ValidType(req.Type) {
		resp.Error(c, http.StatusBadRequest, "invalid business type")
		return
	}

	b.Name = req.Name
	b.Description = req.Description
	b.Type = business.Type(req.Type)
	b.Address = req.Address
	b.Latitude = req.Latitude
	b.Longitude = req.Longitude
	b.Contact = req.Contact
	b.OpeningHours = req.OpeningHours
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := h.repo.Update(c.Request.Context(), b); err != nil {
		if errors.Is(err, business.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "business not found")
			return
		}
		h.logger.Error("business update failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BusinessesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, business.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "business not found")
			return
		}
		h.logger.Error("business delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
