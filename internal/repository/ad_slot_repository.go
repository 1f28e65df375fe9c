package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
)

// AdSlotRepository 广告位数据访问接口
type AdSlotRepository interface {
	List(ctx context.Context, filter AdSlotListFilter) ([]models.AdSlot, int64, error)
	GetByID(ctx context.Context, id uint) (*models.AdSlot, error)
	GetByKey(ctx context.Context, slotKey string) (*models.AdSlot, error)
	Create(ctx context.Context, slot *models.AdSlot) error
	Update(ctx context.Context, slot *models.AdSlot) error
	Delete(ctx context.Context, id uint) error
}

// GormAdSlotRepository GORM 实现
type GormAdSlotRepository struct {
	db *gorm.DB
}

// NewAdSlotRepository 创建广告位仓库
func NewAdSlotRepository(db *gorm.DB) *GormAdSlotRepository {
	return &GormAdSlotRepository{db: db}
}

// List 广告位列表
func (r *GormAdSlotRepository) List(ctx context.Context, filter AdSlotListFilter) ([]models.AdSlot, int64, error) {
	var slots []models.AdSlot
	query := r.db.WithContext(ctx).Model(&models.AdSlot{})

	if filter.Enabled != nil {
		query = query.Where("enabled = ?", *filter.Enabled)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, "slot_key", "name")
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(paginate(filter.Page, filter.PageSize))
	if err := query.Order("id ASC").Find(&slots).Error; err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

// GetByID 根据 ID 获取广告位
func (r *GormAdSlotRepository) GetByID(ctx context.Context, id uint) (*models.AdSlot, error) {
	if id == 0 {
		return nil, nil
	}
	var slot models.AdSlot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// GetByKey 根据 slot_key 获取广告位
func (r *GormAdSlotRepository) GetByKey(ctx context.Context, slotKey string) (*models.AdSlot, error) {
	var slot models.AdSlot
	if err := r.db.WithContext(ctx).Where("slot_key = ?", slotKey).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// Create 创建广告位
func (r *GormAdSlotRepository) Create(ctx context.Context, slot *models.AdSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

// Update 更新广告位
func (r *GormAdSlotRepository) Update(ctx context.Context, slot *models.AdSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// Delete 删除广告位及其投放绑定
func (r *GormAdSlotRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("slot_id = ?", id).Delete(&models.AdPlacement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.AdSlot{}, id).Error
	})
}
