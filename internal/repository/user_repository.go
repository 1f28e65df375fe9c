package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository WordPress 用户数据访问接口（只读）
type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*models.WPUser, error)
	GetByID(ctx context.Context, id uint) (*models.WPUser, error)
	GetMeta(ctx context.Context, userID uint, metaKey string) (string, bool, error)
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByLogin 按登录名或邮箱获取用户
func (r *GormUserRepository) GetByLogin(ctx context.Context, login string) (*models.WPUser, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, nil
	}
	var user models.WPUser
	query := r.db.WithContext(ctx).Where("user_login = ?", login)
	if strings.Contains(login, "@") {
		query = r.db.WithContext(ctx).Where("user_login = ? OR user_email = ?", login, login)
	}
	if err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: "ID"}}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*models.WPUser, error) {
	if id == 0 {
		return nil, nil
	}
	var user models.WPUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetMeta 读取单个 usermeta，第二个返回值表示是否存在
func (r *GormUserRepository) GetMeta(ctx context.Context, userID uint, metaKey string) (string, bool, error) {
	var meta models.WPUserMeta
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND meta_key = ?", userID, metaKey).
		Order("umeta_id ASC").
		First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return meta.MetaValue, true, nil
}
