package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/phone"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/mw"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
	"github.com/Gulrukh07/BeautyShopBooking/internal/users"
	"github.com/Gulrukh07/BeautyShopBooking/internal/util"
)

type UsersHandler struct {
	logger *zap.Logger
	repo   *users.Repo
}

func NewUsersHandler(logger *zap.Logger, repo *users.Repo) *UsersHandler {
	return &UsersHandler{logger: logger, repo: repo}
}

type createUserReq struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number" binding:"required"`
	Password    string  `json:"password" binding:"required"`
	Role        string  `json:"role"`
	Avatar      *string `json:"avatar"`
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "phone_number and password are required")
		return
	}

	canonical, err := phone.ValidateMobile(req.PhoneNumber)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Role == "" {
		req.Role = string(users.RoleClient)
	}
	if !users.ValidRole(req.Role) {
		resp.Error(c, http.StatusBadRequest, "invalid role")
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hash failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	u := &users.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  canonical,
		PasswordHash: hash,
		Role:         users.Role(req.Role),
		Avatar:       req.Avatar,
	}
	if err := h.repo.Create(c.Request.Context(), u); err != nil {
		if errors.Is(err, users.ErrPhoneTaken) {
			resp.Error(c, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("user create failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UsersHandler) List(c *gin.Context) {
	page, limit, offset := resp.PageParams(c)

	f := users.ListFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	list, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("user list failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp.NewPage(list, page, limit, total))
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	u, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("user get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, u)
}

// Me returns the authenticated caller's own record.
func (h *UsersHandler) Me(c *gin.Context) {
	u, err := h.repo.FindByID(c.Request.Context(), mw.UserID(c))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("me lookup failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateUserReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
	Avatar    *string `json:"avatar"`
}

// Update patches profile fields. The phone number is immutable here; it only
// changes through the verified phone-change flow.
func (h *UsersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	u, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("user get failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Avatar != nil {
		u.Avatar = req.Avatar
	}
	if req.Role != nil {
		if !users.ValidRole(*req.Role) {
			resp.Error(c, http.StatusBadRequest, "invalid role")
			return
		}
		u.Role = users.Role(*req.Role)
	}
	if req.Password != nil {
		if err := util.ValidatePassword(*req.Password); err != nil {
			resp.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := util.HashPassword(*req.Password)
		if err != nil {
			h.logger.Error("password hash failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		u.PasswordHash = hash
	}

	if err := h.repo.Update(c.Request.Context(), u); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("user update failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("user delete failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
