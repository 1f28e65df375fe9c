package repository

import (
	"context"

	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdEventRepository 曝光/点击原始日志数据访问接口
type AdEventRepository interface {
	WithTx(tx *gorm.DB) AdEventRepository
	InsertImpression(ctx context.Context, row *models.AdImpression) (bool, error)
	InsertClick(ctx context.Context, row *models.AdClick) (bool, error)
	PruneBefore(ctx context.Context, cutoff models.Date) (AdEventPruneResult, error)
}

// AdEventPruneResult 清理结果
type AdEventPruneResult struct {
	Impressions int64
	Clicks      int64
}

// GormAdEventRepository GORM 实现
type GormAdEventRepository struct {
	db *gorm.DB
}

// NewAdEventRepository 创建原始日志仓库
func NewAdEventRepository(db *gorm.DB) *GormAdEventRepository {
	return &GormAdEventRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAdEventRepository) WithTx(tx *gorm.DB) AdEventRepository {
	if tx == nil {
		return r
	}
	return &GormAdEventRepository{db: tx}
}

func fingerprintConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "fingerprint"}},
		DoNothing: true,
	}
}

// InsertImpression 写入曝光，指纹冲突时忽略；返回是否首次写入
func (r *GormAdEventRepository) InsertImpression(ctx context.Context, row *models.AdImpression) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(fingerprintConflict()).Create(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// InsertClick 写入点击，指纹冲突时忽略；返回是否首次写入
func (r *GormAdEventRepository) InsertClick(ctx context.Context, row *models.AdClick) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(fingerprintConflict()).Create(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// PruneBefore 删除 ymd 早于 cutoff 的原始日志，日聚合不受影响
func (r *GormAdEventRepository) PruneBefore(ctx context.Context, cutoff models.Date) (AdEventPruneResult, error) {
	var result AdEventPruneResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		imp := tx.Where("ymd < ?", cutoff).Delete(&models.AdImpression{})
		if imp.Error != nil {
			return imp.Error
		}
		click := tx.Where("ymd < ?", cutoff).Delete(&models.AdClick{})
		if click.Error != nil {
			return click.Error
		}
		result.Impressions = imp.RowsAffected
		result.Clicks = click.RowsAffected
		return nil
	})
	return result, err
}
