package service

import (
	"context"
	"strings"
	"time"

	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"
)

// TimePatch 可清空的时间字段，Set=false 表示不修改
type TimePatch struct {
	Set   bool
	Value *time.Time
}

// AdCreativeService 素材管理
type AdCreativeService struct {
	repo      repository.AdCreativeRepository
	sanitizer *HTMLSanitizer
}

// NewAdCreativeService 创建素材服务
func NewAdCreativeService(repo repository.AdCreativeRepository, sanitizer *HTMLSanitizer) *AdCreativeService {
	return &AdCreativeService{repo: repo, sanitizer: sanitizer}
}

// AdCreativeInput 创建/更新素材输入，nil 字段在更新时保持不变
type AdCreativeInput struct {
	Name        *string
	Type        *string
	HTML        *string
	ImageURL    *string
	ClickURL    *string
	TargetBlank *bool
	Weight      *int
	ActiveFrom  TimePatch
	ActiveTo    TimePatch
	IsActive    *bool
}

// List 素材列表
func (s *AdCreativeService) List(ctx context.Context, creativeType, search string, isActive *bool, page, pageSize int) ([]models.AdCreative, int64, error) {
	return s.repo.List(ctx, repository.AdCreativeListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.ToLower(strings.TrimSpace(creativeType)),
		Search:   strings.TrimSpace(search),
		IsActive: isActive,
	})
}

// GetByID 获取素材
func (s *AdCreativeService) GetByID(ctx context.Context, id uint) (*models.AdCreative, error) {
	creative, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if creative == nil {
		return nil, ErrNotFound
	}
	return creative, nil
}

// Create 创建素材
func (s *AdCreativeService) Create(ctx context.Context, input AdCreativeInput) (*models.AdCreative, error) {
	creative := &models.AdCreative{Type: constants.CreativeTypeHTML, Weight: 1, IsActive: true}
	if input.Name == nil {
		return nil, invalidf(ErrInvalidAdCreative, "name is required")
	}
	if err := s.apply(creative, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, creative); err != nil {
		return nil, err
	}
	return creative, nil
}

// Update 更新素材，内容约束按合并后的结果校验
func (s *AdCreativeService) Update(ctx context.Context, id uint, input AdCreativeInput) (*models.AdCreative, error) {
	creative, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(creative, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, creative); err != nil {
		return nil, err
	}
	return creative, nil
}

// Delete 删除素材，同时移除其投放绑定
func (s *AdCreativeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *AdCreativeService) apply(creative *models.AdCreative, input AdCreativeInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return invalidf(ErrInvalidAdCreative, "name is required")
		}
		creative.Name = name
	}
	if input.Type != nil {
		creativeType := strings.ToLower(strings.TrimSpace(*input.Type))
		if creativeType != constants.CreativeTypeHTML && creativeType != constants.CreativeTypeImage {
			return invalidf(ErrInvalidAdCreative, "type must be html or image")
		}
		creative.Type = creativeType
	}
	if input.HTML != nil {
		creative.HTML = optionalText(s.sanitizer.Sanitize(*input.HTML))
	}
	if input.ImageURL != nil {
		creative.ImageURL = optionalText(*input.ImageURL)
	}
	if input.ClickURL != nil {
		creative.ClickURL = optionalText(*input.ClickURL)
	}
	if input.TargetBlank != nil {
		creative.TargetBlank = *input.TargetBlank
	}
	if input.Weight != nil {
		if *input.Weight < 0 {
			return invalidf(ErrInvalidAdCreative, "weight must be >= 0")
		}
		creative.Weight = *input.Weight
	}
	if input.ActiveFrom.Set {
		creative.ActiveFrom = input.ActiveFrom.Value
	}
	if input.ActiveTo.Set {
		creative.ActiveTo = input.ActiveTo.Value
	}
	if input.IsActive != nil {
		creative.IsActive = *input.IsActive
	}

	switch creative.Type {
	case constants.CreativeTypeHTML:
		if creative.HTML == nil {
			return invalidf(ErrInvalidAdCreative, "html is required for html creatives")
		}
	case constants.CreativeTypeImage:
		if creative.ImageURL == nil {
			return invalidf(ErrInvalidAdCreative, "image_url is required for image creatives")
		}
	}
	if !validWindow(creative.ActiveFrom, creative.ActiveTo) {
		return invalidf(ErrInvalidAdCreative, "active_to must not be before active_from")
	}
	return nil
}

// optionalText 空白文本存为 NULL
func optionalText(raw string) *string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	return &value
}

func validWindow(from, to *time.Time) bool {
	return from == nil || to == nil || !to.Before(*from)
}
