package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lixinchen-031016/work-record/internal/service"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// BackupHandler 数据备份 HTTP 处理器
type BackupHandler struct {
	backupSvc service.BackupService
}

// NewBackupHandler 创建 BackupHandler
func NewBackupHandler(backupSvc service.BackupService) *BackupHandler {
	return &BackupHandler{backupSvc: backupSvc}
}

// Download 生成并下载全库 SQL 备份（zip）
// GET /api/v1/admin/backup
func (h *BackupHandler) Download(c *gin.Context) {
	buf, filename, err := h.backupSvc.Backup(c.Request.Context())
	if err != nil {
		handleExportError(c, err)
		return
	}

	response.Attachment(c, filename, "application/zip", buf.Bytes())
}
