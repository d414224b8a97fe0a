package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/service"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// 导出/备份模块错误码
const (
	codeExportRangeInvalid  = 15001
	codeExportRangeTooLarge = 15002
	codeExportInvalidDate   = 15003
	codeExportGenerateFail  = 15004
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWorkRecords 导出区间内的工作记录为 Excel
// GET /api/v1/export/work-records?from=2024-01-01&to=2024-01-31
// 区间内无数据时返回 204，不生成文件
func (h *ExportHandler) ExportWorkRecords(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportWorkRecords(c.Request.Context(), &req)
	if err != nil {
		handleExportError(c, err)
		return
	}
	if buf == nil {
		response.NoContent(c)
		return
	}

	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportRangeInvalid):
		response.BadRequest(c, codeExportRangeInvalid, "开始日期不能晚于结束日期")
	case errors.Is(err, service.ErrExportRangeTooLarge):
		response.BadRequest(c, codeExportRangeTooLarge, "导出日期范围过大")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, codeExportInvalidDate, "日期格式错误，应为 YYYY-MM-DD")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, codeExportGenerateFail, "生成文件失败")
	}
}
