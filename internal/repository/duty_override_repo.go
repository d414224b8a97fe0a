package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lixinchen-031016/work-record/internal/model"
	pkgerrors "github.com/lixinchen-031016/work-record/pkg/errors"
)

// DutyOverrideRepository 值班覆盖数据访问接口
type DutyOverrideRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*model.DutyOverride, error)
	// Upsert 以日期为键插入或替换
	Upsert(ctx context.Context, override *model.DutyOverride) error
	DeleteByDate(ctx context.Context, date time.Time) error
	// ListBetween 返回 [from, to] 闭区间内的覆盖记录
	ListBetween(ctx context.Context, from, to time.Time) ([]model.DutyOverride, error)
}

type dutyOverrideRepo struct {
	db *gorm.DB
}

func NewDutyOverrideRepo(db *gorm.DB) DutyOverrideRepository {
	return &dutyOverrideRepo{db: db}
}

func (r *dutyOverrideRepo) GetByDate(ctx context.Context, date time.Time) (*model.DutyOverride, error) {
	var override model.DutyOverride
	err := r.db.WithContext(ctx).
		Where("duty_date = ?", model.TruncateToDate(date)).
		First(&override).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *dutyOverrideRepo) Upsert(ctx context.Context, override *model.DutyOverride) error {
	override.DutyDate = model.TruncateToDate(override.DutyDate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "duty_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"person_name", "updated_at"}),
		}).
		Create(override).Error
}

func (r *dutyOverrideRepo) DeleteByDate(ctx context.Context, date time.Time) error {
	result := r.db.WithContext(ctx).
		Where("duty_date = ?", model.TruncateToDate(date)).
		Delete(&model.DutyOverride{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNoRowsAffected
	}
	return nil
}

func (r *dutyOverrideRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.DutyOverride, error) {
	var overrides []model.DutyOverride
	err := r.db.WithContext(ctx).
		Where("duty_date BETWEEN ? AND ?", model.TruncateToDate(from), model.TruncateToDate(to)).
		Order("duty_date ASC").
		Find(&overrides).Error
	return overrides, err
}
