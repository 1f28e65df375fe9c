package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"
)

var slotKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,100}$`)

// IsValidSlotKey slot_key 只允许字母、数字、下划线与连字符
func IsValidSlotKey(key string) bool {
	return slotKeyPattern.MatchString(key)
}

// AdSlotService 广告位管理
type AdSlotService struct {
	repo repository.AdSlotRepository
}

// NewAdSlotService 创建广告位服务
func NewAdSlotService(repo repository.AdSlotRepository) *AdSlotService {
	return &AdSlotService{repo: repo}
}

// AdSlotInput 创建/更新广告位输入，nil 字段在更新时保持不变
// MaxAds 传 0 表示清空上限。
type AdSlotInput struct {
	SlotKey *string
	Name    *string
	Enabled *bool
	MaxAds  *int
}

// List 广告位列表
func (s *AdSlotService) List(ctx context.Context, search string, enabled *bool, page, pageSize int) ([]models.AdSlot, int64, error) {
	return s.repo.List(ctx, repository.AdSlotListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
		Enabled:  enabled,
	})
}

// GetByID 获取广告位
func (s *AdSlotService) GetByID(ctx context.Context, id uint) (*models.AdSlot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	return slot, nil
}

// Create 创建广告位
func (s *AdSlotService) Create(ctx context.Context, input AdSlotInput) (*models.AdSlot, error) {
	slot := &models.AdSlot{Enabled: true}
	if err := applyAdSlotInput(slot, input, true); err != nil {
		return nil, err
	}
	if err := s.ensureKeyAvailable(ctx, slot.SlotKey, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Update 更新广告位
func (s *AdSlotService) Update(ctx context.Context, id uint, input AdSlotInput) (*models.AdSlot, error) {
	slot, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyAdSlotInput(slot, input, false); err != nil {
		return nil, err
	}
	if err := s.ensureKeyAvailable(ctx, slot.SlotKey, slot.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Delete 删除广告位，同时移除其投放绑定
func (s *AdSlotService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *AdSlotService) ensureKeyAvailable(ctx context.Context, slotKey string, selfID uint) error {
	existing, err := s.repo.GetByKey(ctx, slotKey)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrSlotKeyExists
	}
	return nil
}

func applyAdSlotInput(slot *models.AdSlot, input AdSlotInput, creating bool) error {
	if input.SlotKey != nil || creating {
		key := ""
		if input.SlotKey != nil {
			key = strings.TrimSpace(*input.SlotKey)
		}
		if !IsValidSlotKey(key) {
			return invalidf(ErrInvalidAdSlot, "slot_key must match [A-Za-z0-9_-]{1,100}")
		}
		slot.SlotKey = key
	}
	if input.Name != nil || creating {
		name := ""
		if input.Name != nil {
			name = strings.TrimSpace(*input.Name)
		}
		if name == "" {
			return invalidf(ErrInvalidAdSlot, "name is required")
		}
		slot.Name = name
	}
	if input.Enabled != nil {
		slot.Enabled = *input.Enabled
	}
	if input.MaxAds != nil {
		switch {
		case *input.MaxAds < 0:
			return invalidf(ErrInvalidAdSlot, "max_ads must be >= 0")
		case *input.MaxAds == 0:
			slot.MaxAds = nil
		default:
			maxAds := *input.MaxAds
			slot.MaxAds = &maxAds
		}
	}
	return nil
}
