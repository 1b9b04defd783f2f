package api

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/gamevault/catalog/internal/errors"
	"github.com/gamevault/catalog/internal/models"
	"github.com/gamevault/catalog/internal/service"
	"go.uber.org/zap"
)

// UserHandler 用户处理器
type UserHandler struct {
	users service.UserService
	log   *zap.Logger
}

// NewUserHandler 创建用户处理器
func NewUserHandler(users service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	FullName string            `json:"fullName" binding:"required"`
	Email    string            `json:"email" binding:"required"`
	Points   int               `json:"points"`
	Medals   models.StringList `json:"medals"`
}

// List 用户列表
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, users)
}

// Create 创建用户
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Points:   req.Points,
		Medals:   req.Medals,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 201, user)
}

// Get 获取单个用户
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondError(c, apperrors.Newf(apperrors.ErrUserNotFound, "用户 %d 不存在", id))
		return
	}
	respondOK(c, 200, user)
}

// Delete 删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, 200, gin.H{"deleted": id})
}
