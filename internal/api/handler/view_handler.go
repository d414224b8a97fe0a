package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/service"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// ViewHandler 页面聚合数据处理器
type ViewHandler struct {
	viewSvc service.ViewService
}

// NewViewHandler 创建 ViewHandler
func NewViewHandler(viewSvc service.ViewService) *ViewHandler {
	return &ViewHandler{viewSvc: viewSvc}
}

// Dashboard 主页面：值班、未完成侧边栏与当前视图数据
// GET /api/v1/dashboard?view=add|edit|stats|todo
func (h *ViewHandler) Dashboard(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.ViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	result, err := h.viewSvc.Dashboard(c.Request.Context(), username, &req)
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Admin 系统管理页面
// GET /api/v1/admin?view=users|duty|backup
func (h *ViewHandler) Admin(c *gin.Context) {
	var req dto.ViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	result, err := h.viewSvc.Admin(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
