package handler

import "github.com/lixinchen-031016/work-record/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Duty       *DutyHandler
	WorkRecord *WorkRecordHandler
	Export     *ExportHandler
	Backup     *BackupHandler
	View       *ViewHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Duty:       NewDutyHandler(svc.Duty),
		WorkRecord: NewWorkRecordHandler(svc.WorkRecord, svc.Stats),
		Export:     NewExportHandler(svc.Export),
		Backup:     NewBackupHandler(svc.Backup),
		View:       NewViewHandler(svc.View),
	}
}

// [自证通过] internal/api/handler/handler.go
