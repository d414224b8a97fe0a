package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/service"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// UserHandler 用户管理 HTTP 处理器
// 任何登录用户均可管理账号，不区分角色
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// List 用户列表
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		handleAccountError(c, err)
		return
	}
	response.OK(c, list)
}

// Create 新增用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleAccountError(c, err)
		return
	}
	response.Created(c, result)
}

// ChangePassword 修改指定用户密码
// PUT /api/v1/users/:username/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.userSvc.ChangePassword(c.Request.Context(), c.Param("username"), &req); err != nil {
		handleAccountError(c, err)
		return
	}
	response.OK(c, nil)
}

// Delete 删除用户
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("username")); err != nil {
		handleAccountError(c, err)
		return
	}
	response.NoContent(c)
}
