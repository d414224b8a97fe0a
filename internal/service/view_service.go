package service

import (
	"context"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/pkg/response"
)

// ViewService 页面视图聚合
// 当前视图由客户端通过查询参数显式传入，服务端不保存页面状态
type ViewService interface {
	Dashboard(ctx context.Context, username string, req *dto.ViewRequest) (*dto.DashboardResponse, error)
	Admin(ctx context.Context, req *dto.ViewRequest) (*dto.AdminResponse, error)
}

type viewService struct {
	duty        DutyService
	workRecords WorkRecordService
	stats       StatsService
	users       UserService
}

// NewViewService 创建 ViewService 实例
func NewViewService(duty DutyService, workRecords WorkRecordService, stats StatsService, users UserService) ViewService {
	return &viewService{duty: duty, workRecords: workRecords, stats: stats, users: users}
}

func (s *viewService) Dashboard(ctx context.Context, username string, req *dto.ViewRequest) (*dto.DashboardResponse, error) {
	view := dto.ParseWorkRecordView(req.View)

	duty, err := s.duty.Today(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.workRecords.ListPending(ctx, nil)
	if err != nil {
		return nil, err
	}
	reminders, err := s.workRecords.Reminders(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Username:  username,
		View:      view,
		Duty:      duty,
		Pending:   pending,
		Reminders: reminders,
	}

	switch view {
	case dto.ViewEdit:
		list, total, err := s.workRecords.List(ctx, &req.PaginationRequest)
		if err != nil {
			return nil, err
		}
		resp.Data = response.NewPageData(list, total, req.GetPage(), req.GetPageSize())
	case dto.ViewStats:
		stats, err := s.stats.Stats(ctx)
		if err != nil {
			return nil, err
		}
		resp.Data = stats
	case dto.ViewTodo:
		resp.Data = pending
	}
	return resp, nil
}

func (s *viewService) Admin(ctx context.Context, req *dto.ViewRequest) (*dto.AdminResponse, error) {
	view := dto.ParseAdminView(req.View)
	resp := &dto.AdminResponse{View: view}

	switch view {
	case dto.AdminViewUsers:
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, err
		}
		resp.Data = users
	case dto.AdminViewDuty:
		personnel, err := s.duty.ListPersonnel(ctx)
		if err != nil {
			return nil, err
		}
		today, err := s.duty.Today(ctx)
		if err != nil {
			return nil, err
		}
		resp.Data = dto.AdminDutyData{Personnel: personnel, Today: today}
	case dto.AdminViewBackup:
		resp.Data = dto.AdminBackupData{
			Tables:      BackupTables,
			DownloadURL: "/api/v1/admin/backup",
		}
	}
	return resp, nil
}
