package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lixinchen-031016/work-record/internal/model"
	pkgerrors "github.com/lixinchen-031016/work-record/pkg/errors"
)

// WorkRecordRepository 工作记录数据访问接口
type WorkRecordRepository interface {
	Create(ctx context.Context, record *model.WorkRecord) error
	GetByID(ctx context.Context, id string) (*model.WorkRecord, error)
	List(ctx context.Context, offset, limit int) ([]model.WorkRecord, int64, error)
	// UpdateFields 按列更新，未出现在 fields 中的列保持不变
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	// ListPending 未完成的记录；ref 非 nil 时仅返回 end_date <= ref 的记录
	ListPending(ctx context.Context, ref *time.Time) ([]model.WorkRecord, error)
	// ListByDateRange start_date >= from 且 end_date <= to
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.WorkRecord, error)
	ListAll(ctx context.Context) ([]model.WorkRecord, error)
}

type workRecordRepo struct {
	db *gorm.DB
}

func NewWorkRecordRepo(db *gorm.DB) WorkRecordRepository {
	return &workRecordRepo{db: db}
}

func (r *workRecordRepo) Create(ctx context.Context, record *model.WorkRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *workRecordRepo) GetByID(ctx context.Context, id string) (*model.WorkRecord, error) {
	var record model.WorkRecord
	err := r.db.WithContext(ctx).
		Where("work_record_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *workRecordRepo) List(ctx context.Context, offset, limit int) ([]model.WorkRecord, int64, error) {
	var records []model.WorkRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.WorkRecord{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *workRecordRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, ok := fields["updated_at"]; !ok {
		fields["updated_at"] = time.Now()
	}
	result := r.db.WithContext(ctx).
		Model(&model.WorkRecord{}).
		Where("work_record_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNoRowsAffected
	}
	return nil
}

func (r *workRecordRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("work_record_id = ?", id).
		Delete(&model.WorkRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNoRowsAffected
	}
	return nil
}

func (r *workRecordRepo) ListPending(ctx context.Context, ref *time.Time) ([]model.WorkRecord, error) {
	var records []model.WorkRecord
	db := r.db.WithContext(ctx).Where("is_completed = ?", false)
	if ref != nil {
		db = db.Where("end_date <= ?", model.TruncateToDate(*ref))
	}
	err := db.Order("end_date ASC, created_at ASC").Find(&records).Error
	return records, err
}

func (r *workRecordRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.WorkRecord, error) {
	var records []model.WorkRecord
	err := r.db.WithContext(ctx).
		Where("start_date >= ? AND end_date <= ?", model.TruncateToDate(from), model.TruncateToDate(to)).
		Order("start_date ASC, created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *workRecordRepo) ListAll(ctx context.Context) ([]model.WorkRecord, error) {
	var records []model.WorkRecord
	err := r.db.WithContext(ctx).
		Order("start_date ASC").
		Find(&records).Error
	return records, err
}
