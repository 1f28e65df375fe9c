package repository

import (
	"context"
	"errors"

	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
)

// PostRepository WordPress 文章数据访问接口（只读）
type PostRepository interface {
	GetPublishedByID(ctx context.Context, id uint) (*models.WPPost, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// GetPublishedByID 获取已发布文章
func (r *GormPostRepository) GetPublishedByID(ctx context.Context, id uint) (*models.WPPost, error) {
	if id == 0 {
		return nil, nil
	}
	var post models.WPPost
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"ID": id, "post_status": constants.PostStatusPublish}).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}
