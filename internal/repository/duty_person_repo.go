package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lixinchen-031016/work-record/internal/model"
	pkgerrors "github.com/lixinchen-031016/work-record/pkg/errors"
)

// DutyPersonRepository 值班人员数据访问接口
type DutyPersonRepository interface {
	Create(ctx context.Context, person *model.DutyPerson) error
	GetByName(ctx context.Context, name string) (*model.DutyPerson, error)
	// ListOrdered 按轮换顺序返回全部值班人员
	ListOrdered(ctx context.Context) ([]model.DutyPerson, error)
	Rename(ctx context.Context, oldName, newName string) error
	DeleteByName(ctx context.Context, name string) error
}

type dutyPersonRepo struct {
	db *gorm.DB
}

func NewDutyPersonRepo(db *gorm.DB) DutyPersonRepository {
	return &dutyPersonRepo{db: db}
}

func (r *dutyPersonRepo) Create(ctx context.Context, person *model.DutyPerson) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *dutyPersonRepo) GetByName(ctx context.Context, name string) (*model.DutyPerson, error) {
	var person model.DutyPerson
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *dutyPersonRepo) ListOrdered(ctx context.Context) ([]model.DutyPerson, error) {
	var personnel []model.DutyPerson
	err := r.db.WithContext(ctx).
		Order("created_at ASC, duty_person_id ASC").
		Find(&personnel).Error
	return personnel, err
}

// Rename 只修改姓名，created_at 不变，因此轮换位置保持不变
func (r *dutyPersonRepo) Rename(ctx context.Context, oldName, newName string) error {
	result := r.db.WithContext(ctx).
		Model(&model.DutyPerson{}).
		Where("name = ?", oldName).
		Updates(map[string]interface{}{
			"name":       newName,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNoRowsAffected
	}
	return nil
}

func (r *dutyPersonRepo) DeleteByName(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&model.DutyPerson{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNoRowsAffected
	}
	return nil
}
