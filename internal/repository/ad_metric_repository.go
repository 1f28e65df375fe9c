package repository

import (
	"context"
	"errors"
	"time"

	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdMetricRepository 广告日聚合数据访问接口
type AdMetricRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) AdMetricRepository

	IncrementDaily(ctx context.Context, delta AdMetricDelta, now time.Time) error
	GetDaily(ctx context.Context, ymd models.Date, slotID, creativeID uint) (*models.AdMetricDaily, error)
	Summary(ctx context.Context, filter AdMetricRangeFilter) ([]AdMetricSummaryRow, error)
	TopSlots(ctx context.Context, filter AdMetricRangeFilter, limit int) ([]AdMetricTopRow, error)
	TopCreatives(ctx context.Context, filter AdMetricRangeFilter, limit int) ([]AdMetricTopRow, error)
}

// AdMetricDelta 一次聚合累加
type AdMetricDelta struct {
	YMD         models.Date
	SlotID      uint
	CreativeID  uint
	Impressions int64
	Clicks      int64
}

// AdMetricSummaryRow 按天汇总行
type AdMetricSummaryRow struct {
	YMD         models.Date `json:"ymd"`
	Impressions int64       `json:"impressions"`
	Clicks      int64       `json:"clicks"`
}

// AdMetricTopRow 排行行，SlotKey 仅按广告位统计时有值
type AdMetricTopRow struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	SlotKey     string `json:"slot_key,omitempty"`
	Impressions int64  `json:"impressions"`
	Clicks      int64  `json:"clicks"`
}

// GormAdMetricRepository GORM 实现
type GormAdMetricRepository struct {
	db *gorm.DB
}

// NewAdMetricRepository 创建聚合仓库
func NewAdMetricRepository(db *gorm.DB) *GormAdMetricRepository {
	return &GormAdMetricRepository{db: db}
}

// Transaction 执行事务
func (r *GormAdMetricRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// WithTx 绑定事务
func (r *GormAdMetricRepository) WithTx(tx *gorm.DB) AdMetricRepository {
	if tx == nil {
		return r
	}
	return &GormAdMetricRepository{db: tx}
}

// IncrementDaily 累加日聚合，不存在时插入
func (r *GormAdMetricRepository) IncrementDaily(ctx context.Context, delta AdMetricDelta, now time.Time) error {
	if delta.Impressions == 0 && delta.Clicks == 0 {
		return nil
	}
	table := models.AdMetricDaily{}.TableName()
	row := models.AdMetricDaily{
		YMD:         delta.YMD,
		SlotID:      delta.SlotID,
		CreativeID:  delta.CreativeID,
		Impressions: delta.Impressions,
		Clicks:      delta.Clicks,
		UpdatedAt:   now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ymd"}, {Name: "slot_id"}, {Name: "creative_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"impressions": gorm.Expr(table+".impressions + ?", delta.Impressions),
			"clicks":      gorm.Expr(table+".clicks + ?", delta.Clicks),
			"updated_at":  now,
		}),
	}).Create(&row).Error
}

// GetDaily 获取单条日聚合
func (r *GormAdMetricRepository) GetDaily(ctx context.Context, ymd models.Date, slotID, creativeID uint) (*models.AdMetricDaily, error) {
	var row models.AdMetricDaily
	err := r.db.WithContext(ctx).
		Where("ymd = ? AND slot_id = ? AND creative_id = ?", ymd, slotID, creativeID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *GormAdMetricRepository) rangeQuery(ctx context.Context, alias string, filter AdMetricRangeFilter) *gorm.DB {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	query := r.db.WithContext(ctx).
		Table(models.AdMetricDaily{}.TableName()+" AS "+alias).
		Where(prefix+"ymd >= ? AND "+prefix+"ymd <= ?", filter.From, filter.To)
	if filter.SlotID != 0 {
		query = query.Where(prefix+"slot_id = ?", filter.SlotID)
	}
	if filter.CreativeID != 0 {
		query = query.Where(prefix+"creative_id = ?", filter.CreativeID)
	}
	return query
}

// Summary 按天汇总曝光与点击，日期升序
func (r *GormAdMetricRepository) Summary(ctx context.Context, filter AdMetricRangeFilter) ([]AdMetricSummaryRow, error) {
	var rows []AdMetricSummaryRow
	err := r.rangeQuery(ctx, "m", filter).
		Select("m.ymd AS ymd, COALESCE(SUM(m.impressions), 0) AS impressions, COALESCE(SUM(m.clicks), 0) AS clicks").
		Group("m.ymd").
		Order("m.ymd ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopSlots 广告位排行
// 聚合行不校验外键，未知广告位以空名称出现。
func (r *GormAdMetricRepository) TopSlots(ctx context.Context, filter AdMetricRangeFilter, limit int) ([]AdMetricTopRow, error) {
	var rows []AdMetricTopRow
	err := r.rangeQuery(ctx, "m", filter).
		Select("m.slot_id AS id, COALESCE(MAX(s.name), '') AS name, COALESCE(MAX(s.slot_key), '') AS slot_key, COALESCE(SUM(m.impressions), 0) AS impressions, COALESCE(SUM(m.clicks), 0) AS clicks").
		Joins("LEFT JOIN " + models.AdSlot{}.TableName() + " AS s ON s.id = m.slot_id").
		Group("m.slot_id").
		Order("impressions DESC, clicks DESC, id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopCreatives 素材排行
func (r *GormAdMetricRepository) TopCreatives(ctx context.Context, filter AdMetricRangeFilter, limit int) ([]AdMetricTopRow, error) {
	var rows []AdMetricTopRow
	err := r.rangeQuery(ctx, "m", filter).
		Select("m.creative_id AS id, COALESCE(MAX(c.name), '') AS name, COALESCE(SUM(m.impressions), 0) AS impressions, COALESCE(SUM(m.clicks), 0) AS clicks").
		Joins("LEFT JOIN " + models.AdCreative{}.TableName() + " AS c ON c.id = m.creative_id").
		Group("m.creative_id").
		Order("impressions DESC, clicks DESC, id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
