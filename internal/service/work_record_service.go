package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lixinchen-031016/work-record/internal/dto"
	"github.com/lixinchen-031016/work-record/internal/model"
	"github.com/lixinchen-031016/work-record/internal/repository"
	pkgerrors "github.com/lixinchen-031016/work-record/pkg/errors"
)

// ── 工作记录模块业务错误 ──

var (
	ErrWorkRecordNotFound      = errors.New("工作记录不存在")
	ErrWorkRecordFieldRequired = errors.New("记录人、工作类型、工作内容均不能为空")
	ErrEndBeforeStart          = errors.New("结束日期不能早于开始日期")
)

// WorkRecordService 工作记录业务接口
type WorkRecordService interface {
	Create(ctx context.Context, req *dto.CreateWorkRecordRequest) (*dto.WorkRecordResponse, error)
	Get(ctx context.Context, id string) (*dto.WorkRecordResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.WorkRecordResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateWorkRecordRequest) (*dto.WorkRecordResponse, error)
	Delete(ctx context.Context, id string) error
	// Complete 标记完成，幂等，不支持撤销
	Complete(ctx context.Context, id string) error
	ListPending(ctx context.Context, req *dto.PendingRequest) ([]dto.WorkRecordResponse, error)
	// Reminders 截止日期已过（<= 昨天）仍未完成的工作
	Reminders(ctx context.Context) ([]dto.WorkRecordResponse, error)
}

type workRecordService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewWorkRecordService 创建 WorkRecordService 实例
func NewWorkRecordService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) WorkRecordService {
	return &workRecordService{repo: repo, loc: loc, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *workRecordService) Create(ctx context.Context, req *dto.CreateWorkRecordRequest) (*dto.WorkRecordResponse, error) {
	record := &model.WorkRecord{
		Recorder:    strings.TrimSpace(req.Recorder),
		WorkType:    strings.TrimSpace(req.WorkType),
		WorkContent: strings.TrimSpace(req.WorkContent),
	}
	if record.Recorder == "" || record.WorkType == "" || record.WorkContent == "" {
		return nil, ErrWorkRecordFieldRequired
	}

	var err error
	if record.StartDate, err = parseDate(req.StartDate); err != nil {
		return nil, err
	}
	if record.EndDate, err = parseDate(req.EndDate); err != nil {
		return nil, err
	}
	if record.EndDate.Before(record.StartDate) {
		return nil, ErrEndBeforeStart
	}

	if err := s.repo.WorkRecord.Create(ctx, record); err != nil {
		s.logger.Error("创建工作记录失败", zap.Error(err))
		return nil, err
	}

	resp := toWorkRecordResponse(record)
	return &resp, nil
}

// ────────────────────── Get / List ──────────────────────

func (s *workRecordService) Get(ctx context.Context, id string) (*dto.WorkRecordResponse, error) {
	record, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWorkRecordResponse(record)
	return &resp, nil
}

func (s *workRecordService) getByID(ctx context.Context, id string) (*model.WorkRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrWorkRecordNotFound
	}
	record, err := s.repo.WorkRecord.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkRecordNotFound
		}
		s.logger.Error("查询工作记录失败", zap.Error(err))
		return nil, err
	}
	return record, nil
}

func (s *workRecordService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.WorkRecordResponse, int64, error) {
	records, total, err := s.repo.WorkRecord.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询工作记录列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toWorkRecordResponses(records), total, nil
}

// ────────────────────── Update ──────────────────────

// Update 仅写入请求中出现的字段；合并后的日期仍需满足 end >= start
func (s *workRecordService) Update(ctx context.Context, id string, req *dto.UpdateWorkRecordRequest) (*dto.WorkRecordResponse, error) {
	record, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	setText := func(column string, value *string, target *string) error {
		if value == nil {
			return nil
		}
		v := strings.TrimSpace(*value)
		if v == "" {
			return ErrWorkRecordFieldRequired
		}
		*target = v
		fields[column] = v
		return nil
	}
	setDate := func(column string, value *string, target *time.Time) error {
		if value == nil {
			return nil
		}
		d, err := parseDate(*value)
		if err != nil {
			return err
		}
		*target = d
		fields[column] = d
		return nil
	}

	if err := setText("recorder", req.Recorder, &record.Recorder); err != nil {
		return nil, err
	}
	if err := setText("work_type", req.WorkType, &record.WorkType); err != nil {
		return nil, err
	}
	if err := setText("work_content", req.WorkContent, &record.WorkContent); err != nil {
		return nil, err
	}
	if err := setDate("start_date", req.StartDate, &record.StartDate); err != nil {
		return nil, err
	}
	if err := setDate("end_date", req.EndDate, &record.EndDate); err != nil {
		return nil, err
	}
	if req.IsCompleted != nil {
		record.IsCompleted = *req.IsCompleted
		fields["is_completed"] = *req.IsCompleted
	}

	if record.EndDate.Before(record.StartDate) {
		return nil, ErrEndBeforeStart
	}
	if len(fields) == 0 {
		resp := toWorkRecordResponse(record)
		return &resp, nil
	}

	record.UpdatedAt = s.now()
	fields["updated_at"] = record.UpdatedAt
	if err := s.repo.WorkRecord.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, pkgerrors.ErrNoRowsAffected) {
			return nil, ErrWorkRecordNotFound
		}
		s.logger.Error("更新工作记录失败", zap.Error(err))
		return nil, err
	}

	resp := toWorkRecordResponse(record)
	return &resp, nil
}

// ────────────────────── Delete / Complete ──────────────────────

func (s *workRecordService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrWorkRecordNotFound
	}
	if err := s.repo.WorkRecord.Delete(ctx, id); err != nil {
		if errors.Is(err, pkgerrors.ErrNoRowsAffected) {
			return ErrWorkRecordNotFound
		}
		s.logger.Error("删除工作记录失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *workRecordService) Complete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrWorkRecordNotFound
	}
	err := s.repo.WorkRecord.UpdateFields(ctx, id, map[string]interface{}{"is_completed": true})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNoRowsAffected) {
			return ErrWorkRecordNotFound
		}
		s.logger.Error("标记完成失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Pending ──────────────────────

func (s *workRecordService) ListPending(ctx context.Context, req *dto.PendingRequest) ([]dto.WorkRecordResponse, error) {
	var ref *time.Time
	if req != nil && req.ReferenceDate != "" {
		d, err := parseDate(req.ReferenceDate)
		if err != nil {
			return nil, err
		}
		ref = &d
	}
	return s.listPending(ctx, ref)
}

func (s *workRecordService) Reminders(ctx context.Context) ([]dto.WorkRecordResponse, error) {
	yesterday := localToday(s.now(), s.loc).AddDate(0, 0, -1)
	return s.listPending(ctx, &yesterday)
}

func (s *workRecordService) listPending(ctx context.Context, ref *time.Time) ([]dto.WorkRecordResponse, error) {
	records, err := s.repo.WorkRecord.ListPending(ctx, ref)
	if err != nil {
		s.logger.Error("查询待办工作失败", zap.Error(err))
		return nil, err
	}
	return toWorkRecordResponses(records), nil
}
