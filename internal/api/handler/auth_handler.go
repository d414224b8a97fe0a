package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/service"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// 认证模块错误码
const (
	codeInvalidCredentials = 11001
	codeUsernameExists     = 11002
	codePasswordMismatch   = 11003
	codeUserNotFound       = 11004
	codeUsernameRequired   = 11005
	codePasswordLength     = 11006
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 用户登录，返回 Token 与逾期提醒
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleAccountError(c, err)
		return
	}

	response.OK(c, result)
}

// Register 自助注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleAccountError(c, err)
		return
	}

	response.Created(c, result)
}

// ResetPassword 按用户名重置密码（无需登录）
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), &req); err != nil {
		handleAccountError(c, err)
		return
	}

	response.OK(c, nil)
}

// Logout 登出
// POST /api/v1/auth/logout
// Token 无服务端状态，由客户端丢弃即可
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := MustGetUsername(c); !ok {
		return
	}
	response.OK(c, nil)
}

// Me 当前登录用户
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), username)
	if err != nil {
		handleAccountError(c, err)
		return
	}

	response.OK(c, result)
}

// handleAccountError 认证与用户管理共用的错误映射
func handleAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, codeInvalidCredentials, "用户名或密码错误")
	case errors.Is(err, service.ErrUsernameExists):
		response.Conflict(c, codeUsernameExists, "用户名已存在")
	case errors.Is(err, service.ErrPasswordMismatch):
		response.BadRequest(c, codePasswordMismatch, "两次输入的密码不一致")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, codeUserNotFound, "用户不存在")
	case errors.Is(err, service.ErrUsernameRequired):
		response.BadRequest(c, codeUsernameRequired, "用户名不能为空")
	case errors.Is(err, service.ErrPasswordLength):
		response.BadRequest(c, codePasswordLength, "密码长度应为 6-72 字节")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/auth_handler.go
