package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/service"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// 值班模块错误码
const (
	codeDutyNameRequired     = 13001
	codeDutyPersonExists     = 13002
	codeDutyPersonNotFound   = 13003
	codeDutyOverrideNotFound = 13004
	codeDutyInvalidDate      = 13005
)

// DutyHandler 值班轮换 HTTP 处理器
type DutyHandler struct {
	dutySvc service.DutyService
}

// NewDutyHandler 创建 DutyHandler
func NewDutyHandler(dutySvc service.DutyService) *DutyHandler {
	return &DutyHandler{dutySvc: dutySvc}
}

// Today 今日值班
// GET /api/v1/duty/today
func (h *DutyHandler) Today(c *gin.Context) {
	result, err := h.dutySvc.Today(c.Request.Context())
	if err != nil {
		h.handleDutyError(c, err)
		return
	}
	response.OK(c, result)
}

// On 指定日期值班
// GET /api/v1/duty/date/:date
func (h *DutyHandler) On(c *gin.Context) {
	result, err := h.dutySvc.On(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.handleDutyError(c, err)
		return
	}
	response.OK(c, result)
}

// SaveOverride 指定某日值班人员（已存在则覆盖）
// PUT /api/v1/duty/overrides/:date
func (h *DutyHandler) SaveOverride(c *gin.Context) {
	var req dto.SaveOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.dutySvc.SaveOverride(c.Request.Context(), c.Param("date"), &req)
	if err != nil {
		h.handleDutyError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteOverride 取消某日指定，恢复轮换
// DELETE /api/v1/duty/overrides/:date
func (h *DutyHandler) DeleteOverride(c *gin.Context) {
	if err := h.dutySvc.DeleteOverride(c.Request.Context(), c.Param("date")); err != nil {
		h.handleDutyError(c, err)
		return
	}
	response.NoContent(c)
}

// Calendar 值班日历订阅
// GET /api/v1/duty/calendar.ics?from=2024-01-01&days=30
func (h *DutyHandler) Calendar(c *gin.Context) {
	var req dto.DutyCalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	body, err := h.dutySvc.Calendar(c.Request.Context(), &req)
	if err != nil {
		h.handleDutyError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="duty.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// ListPersonnel 值班名单（按轮换顺序）
// GET /api/v1/duty/personnel
func (h *DutyHandler) ListPersonnel(c *gin.Context) {
	list, err := h.dutySvc.ListPersonnel(c.Request.Context())
	if err != nil {
		h.handleDutyError(c, err)
		return
	}
	response.OK(c, list)
}

// AddPerson 添加值班人员（追加到名单末尾）
// POST /api/v1/duty/personnel
func (h *DutyHandler) AddPerson(c *gin.Context) {
	var req dto.DutyPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.dutySvc.AddPerson(c.Request.Context(), &req)
	if err != nil {
		h.handleDutyError(c, err)
		return
	}
	response.Created(c, result)
}

// RenamePerson 重命名值班人员，轮换位置不变
// PUT /api/v1/duty/personnel/:name
func (h *DutyHandler) RenamePerson(c *gin.Context) {
	var req dto.DutyPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.dutySvc.RenamePerson(c.Request.Context(), c.Param("name"), &req)
	if err != nil {
		h.handleDutyError(c, err)
		return
	}
	response.OK(c, result)
}

// DeletePerson 移除值班人员
// DELETE /api/v1/duty/personnel/:name
func (h *DutyHandler) DeletePerson(c *gin.Context) {
	if err := h.dutySvc.DeletePerson(c.Request.Context(), c.Param("name")); err != nil {
		h.handleDutyError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *DutyHandler) handleDutyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDutyNameRequired):
		response.BadRequest(c, codeDutyNameRequired, "值班人员姓名不能为空")
	case errors.Is(err, service.ErrDutyPersonExists):
		response.Conflict(c, codeDutyPersonExists, "值班人员已存在")
	case errors.Is(err, service.ErrDutyPersonNotFound):
		response.NotFound(c, codeDutyPersonNotFound, "值班人员不存在")
	case errors.Is(err, service.ErrDutyOverrideNotFound):
		response.NotFound(c, codeDutyOverrideNotFound, "该日期没有指定值班人员")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, codeDutyInvalidDate, "日期格式错误，应为 YYYY-MM-DD")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
