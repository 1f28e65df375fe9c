package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
)

// AdCreativeRepository 广告素材数据访问接口
type AdCreativeRepository interface {
	List(ctx context.Context, filter AdCreativeListFilter) ([]models.AdCreative, int64, error)
	GetByID(ctx context.Context, id uint) (*models.AdCreative, error)
	Create(ctx context.Context, creative *models.AdCreative) error
	Update(ctx context.Context, creative *models.AdCreative) error
	Delete(ctx context.Context, id uint) error
}

// GormAdCreativeRepository GORM 实现
type GormAdCreativeRepository struct {
	db *gorm.DB
}

// NewAdCreativeRepository 创建素材仓库
func NewAdCreativeRepository(db *gorm.DB) *GormAdCreativeRepository {
	return &GormAdCreativeRepository{db: db}
}

// List 素材列表
func (r *GormAdCreativeRepository) List(ctx context.Context, filter AdCreativeListFilter) ([]models.AdCreative, int64, error) {
	var creatives []models.AdCreative
	query := r.db.WithContext(ctx).Model(&models.AdCreative{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, "name")
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(paginate(filter.Page, filter.PageSize))
	if err := query.Order("id DESC").Find(&creatives).Error; err != nil {
		return nil, 0, err
	}
	return creatives, total, nil
}

// GetByID 根据 ID 获取素材
func (r *GormAdCreativeRepository) GetByID(ctx context.Context, id uint) (*models.AdCreative, error) {
	if id == 0 {
		return nil, nil
	}
	var creative models.AdCreative
	if err := r.db.WithContext(ctx).First(&creative, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creative, nil
}

// Create 创建素材
func (r *GormAdCreativeRepository) Create(ctx context.Context, creative *models.AdCreative) error {
	return r.db.WithContext(ctx).Create(creative).Error
}

// Update 更新素材
func (r *GormAdCreativeRepository) Update(ctx context.Context, creative *models.AdCreative) error {
	return r.db.WithContext(ctx).Save(creative).Error
}

// Delete 删除素材及其投放绑定
func (r *GormAdCreativeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("creative_id = ?", id).Delete(&models.AdPlacement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.AdCreative{}, id).Error
	})
}
