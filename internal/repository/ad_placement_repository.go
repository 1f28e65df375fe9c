package repository

import (
	"context"
	"errors"
	"time"

	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
)

// AdPlacementRepository 投放绑定数据访问接口
type AdPlacementRepository interface {
	List(ctx context.Context, filter AdPlacementListFilter) ([]models.AdPlacement, int64, error)
	GetByID(ctx context.Context, id uint) (*models.AdPlacement, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]models.AdPlacement, error)
	ListEligibleBySlot(ctx context.Context, slotID uint, now time.Time) ([]AdEligibleRow, error)
	Create(ctx context.Context, placement *models.AdPlacement) error
	Update(ctx context.Context, placement *models.AdPlacement) error
	Delete(ctx context.Context, id uint) error
}

// AdEligibleRow 选取阶段使用的投放 + 素材联合行
type AdEligibleRow struct {
	PlacementID     uint
	PlacementWeight int
	CreativeID      uint
	CreativeName    string
	CreativeType    string
	HTML            *string
	ImageURL        *string
	ClickURL        *string
	TargetBlank     bool
}

// GormAdPlacementRepository GORM 实现
type GormAdPlacementRepository struct {
	db *gorm.DB
}

// NewAdPlacementRepository 创建投放仓库
func NewAdPlacementRepository(db *gorm.DB) *GormAdPlacementRepository {
	return &GormAdPlacementRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAdPlacementRepository) WithTx(tx *gorm.DB) *GormAdPlacementRepository {
	if tx == nil {
		return r
	}
	return &GormAdPlacementRepository{db: tx}
}

// List 投放列表
func (r *GormAdPlacementRepository) List(ctx context.Context, filter AdPlacementListFilter) ([]models.AdPlacement, int64, error) {
	var placements []models.AdPlacement
	query := r.db.WithContext(ctx).Model(&models.AdPlacement{})

	if filter.SlotID != 0 {
		query = query.Where("slot_id = ?", filter.SlotID)
	}
	if filter.CreativeID != 0 {
		query = query.Where("creative_id = ?", filter.CreativeID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(paginate(filter.Page, filter.PageSize))
	if filter.WithRelations {
		query = query.Preload("Slot").Preload("Creative")
	}
	if err := query.Order("id ASC").Find(&placements).Error; err != nil {
		return nil, 0, err
	}
	return placements, total, nil
}

// GetByID 根据 ID 获取投放
func (r *GormAdPlacementRepository) GetByID(ctx context.Context, id uint) (*models.AdPlacement, error) {
	if id == 0 {
		return nil, nil
	}
	var placement models.AdPlacement
	if err := r.db.WithContext(ctx).First(&placement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &placement, nil
}

// FindByIDs 批量查询投放，返回 id -> 投放
func (r *GormAdPlacementRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.AdPlacement, error) {
	result := make(map[uint]models.AdPlacement, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var placements []models.AdPlacement
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&placements).Error; err != nil {
		return nil, err
	}
	for _, placement := range placements {
		result[placement.ID] = placement
	}
	return result, nil
}

// ListEligibleBySlot 查询广告位下当前可投放的绑定
// 投放与素材两侧都必须启用且处于时间窗口内，按投放 ID 升序返回。
func (r *GormAdPlacementRepository) ListEligibleBySlot(ctx context.Context, slotID uint, now time.Time) ([]AdEligibleRow, error) {
	var rows []AdEligibleRow
	err := r.db.WithContext(ctx).
		Table(models.AdPlacement{}.TableName()+" AS p").
		Select("p.id AS placement_id, p.weight AS placement_weight, c.id AS creative_id, c.name AS creative_name, c.type AS creative_type, c.html AS html, c.image_url AS image_url, c.click_url AS click_url, c.target_blank AS target_blank").
		Joins("JOIN "+models.AdCreative{}.TableName()+" AS c ON c.id = p.creative_id").
		Where("p.slot_id = ? AND p.is_active = ? AND c.is_active = ?", slotID, true, true).
		Scopes(activeWindow("p", now), activeWindow("c", now)).
		Order("p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create 创建投放
func (r *GormAdPlacementRepository) Create(ctx context.Context, placement *models.AdPlacement) error {
	return r.db.WithContext(ctx).Create(placement).Error
}

// Update 更新投放
func (r *GormAdPlacementRepository) Update(ctx context.Context, placement *models.AdPlacement) error {
	return r.db.WithContext(ctx).Omit("Slot", "Creative").Save(placement).Error
}

// Delete 删除投放
func (r *GormAdPlacementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AdPlacement{}, id).Error
}
