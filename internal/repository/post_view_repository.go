package repository

import (
	"context"
	"time"

	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostViewRepository 文章浏览计数数据访问接口
type PostViewRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PostViewRepository
	InsertLog(ctx context.Context, row *models.PostViewLog) (bool, error)
	IncrementDaily(ctx context.Context, postID uint, ymd models.Date, now time.Time) error
	SumViews(ctx context.Context, postID uint) (int64, error)
}

// GormPostViewRepository GORM 实现
type GormPostViewRepository struct {
	db *gorm.DB
}

// NewPostViewRepository 创建浏览计数仓库
func NewPostViewRepository(db *gorm.DB) *GormPostViewRepository {
	return &GormPostViewRepository{db: db}
}

// Transaction 执行事务
func (r *GormPostViewRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// WithTx 绑定事务
func (r *GormPostViewRepository) WithTx(tx *gorm.DB) PostViewRepository {
	if tx == nil {
		return r
	}
	return &GormPostViewRepository{db: tx}
}

// InsertLog 写入浏览日志，指纹冲突时忽略；返回是否首次写入
func (r *GormPostViewRepository) InsertLog(ctx context.Context, row *models.PostViewLog) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(fingerprintConflict()).Create(row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// IncrementDaily 当日浏览数 +1
func (r *GormPostViewRepository) IncrementDaily(ctx context.Context, postID uint, ymd models.Date, now time.Time) error {
	table := models.PostViewDaily{}.TableName()
	row := models.PostViewDaily{PostID: postID, YMD: ymd, Views: 1, UpdatedAt: now}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}, {Name: "ymd"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views":      gorm.Expr(table + ".views + 1"),
			"updated_at": now,
		}),
	}).Create(&row).Error
}

// SumViews 累计浏览数
func (r *GormPostViewRepository) SumViews(ctx context.Context, postID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.PostViewDaily{}).
		Where("post_id = ?", postID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}
