package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/catalog"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

// CatalogHandler serves services, sub-services, specialist offers and
// business workers.
type CatalogHandler struct {
	logger *zap.Logger
	repo   *catalog.Repo
}

func NewCatalogHandler(logger *zap.Logger, repo *catalog.Repo) *CatalogHandler {
	return &CatalogHandler{logger: logger, repo: repo}
}

// --- services ---

type serviceReq struct {
	Name        string    `json:"name" binding:"required"`
	Description *string   `json:"description"`
	BusinessID  uuid.UUID `json:"business_id" binding:"required"`
	IsActive    *bool     `json:"is_active"`
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req serviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "name and business_id are required")
		return
	}
	s := &catalog.Service{
		Name:        req.Name,
		Description: req.Description,
		BusinessID:  req.BusinessID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if err := h.repo.CreateService(c.Request.Context(), s); err != nil {
		if errors.Is(err, catalog.ErrBusinessReference) {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("service create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	f := catalog.ServiceFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if v := c.Query("business_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			resp.Error(c, http.StatusBadRequest, "invalid business_id")
			return
		}
		f.BusinessID = &id
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true" || v == "1"
		f.IsActive = &active
	}

	list, total, err := h.repo.ListServices(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("service list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp.NewPage(list, page, limit, total))
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	s, err := h.repo.FindServiceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "service not found")
			return
		}
		h.logger.Error("service get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	s, err := h.repo.FindServiceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "service not found")
			return
		}
		h.logger.Error("service get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	var req serviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	s.Name = req.Name
	s.Description = req.Description
	s.BusinessID = req.BusinessID
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}

	if err := h.repo.UpdateService(c.Request.Context(), s); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "service not found")
			return
		}
		h.logger.Error("service update failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteService(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "service not found")
			return
		}
		h.logger.Error("service delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- sub-services ---

type subServiceReq struct {
	Name         string    `json:"name" binding:"required"`
	Description  *string   `json:"description"`
	ServiceID    uuid.UUID `json:"service_id" binding:"required"`
	SpecialistID uuid.UUID `json:"specialist_id" binding:"required"`
}

func (h *CatalogHandler) CreateSubService(c *gin.Context) {
	var req subServiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "name, service_id and specialist_id are required")
		return
	}
	s := &catalog.SubService{
		Name:         req.Name,
		Description:  req.Description,
		ServiceID:    req.ServiceID,
		SpecialistID: req.SpecialistID,
	}
	if err := h.repo.CreateSubService(c.Request.Context(), s); err != nil {
		if errors.Is(err, catalog.ErrBusinessReference) {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("sub-service create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *CatalogHandler) ListSubServices(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "service_id is required")
		return
	}
	list, err := h.repo.ListSubServices(c.Request.Context(), serviceID)
	if err != nil {
		h.logger.Error("sub-service list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

// --- specialist offers ---

type specialistServiceReq struct {
	SpecialistID uuid.UUID `json:"specialist_id" binding:"required"`
	SubServiceID uuid.UUID `json:"sub_service_id" binding:"required"`
	Price        int64     `json:"price"`
	Duration     int64     `json:"duration"`
}

func (h *CatalogHandler) CreateSpecialistService(c *gin.Context) {
	var req specialistServiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "specialist_id and sub_service_id are required")
		return
	}
	s := &catalog.SpecialistService{
		SpecialistID: req.SpecialistID,
		SubServiceID: req.SubServiceID,
		Price:        req.Price,
		Duration:     req.Duration,
	}
	if err := h.repo.CreateSpecialistService(c.Request.Context(), s); err != nil {
		if errors.Is(err, catalog.ErrBusinessReference) {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("specialist service create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, s)
}

// --- business workers ---

type workerReq struct {
	SpecialistID      uuid.UUID `json:"specialist_id" binding:"required"`
	ServiceID         uuid.UUID `json:"service_id" binding:"required"`
	Position          string    `json:"position"`
	Bio               *string   `json:"bio"`
	YearsOfExperience int64     `json:"years_of_experience"`
	IsActive          *bool     `json:"is_active"`
}

func (h *CatalogHandler) CreateWorker(c *gin.Context) {
	var req workerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "specialist_id and service_id are required")
		return
	}
	w := &catalog.BusinessWorker{
		SpecialistID:      req.SpecialistID,
		ServiceID:         req.ServiceID,
		Position:          req.Position,
		Bio:               req.Bio,
		YearsOfExperience: req.YearsOfExperience,
		IsActive:          true,
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	if err := h.repo.CreateWorker(c.Request.Context(), w); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotASpecialist):
			resp.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrBusinessReference):
			resp.Error(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("worker create failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
		}
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *CatalogHandler) ListWorkers(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	list, total, err := h.repo.ListWorkers(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("worker list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp.NewPage(list, page, limit, total))
}

func (h *CatalogHandler) GetWorker(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	w, err := h.repo.FindWorkerByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "worker not found")
			return
		}
		h.logger.Error("worker get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *CatalogHandler) DeleteWorker(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteWorker(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "worker not found")
			return
		}
		h.logger.Error("worker delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
