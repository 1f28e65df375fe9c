package service

import (
	"context"

	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"
)

// AdPlacementService 投放绑定管理
type AdPlacementService struct {
	repo         repository.AdPlacementRepository
	slotRepo     repository.AdSlotRepository
	creativeRepo repository.AdCreativeRepository
}

// NewAdPlacementService 创建投放服务
func NewAdPlacementService(
	repo repository.AdPlacementRepository,
	slotRepo repository.AdSlotRepository,
	creativeRepo repository.AdCreativeRepository,
) *AdPlacementService {
	return &AdPlacementService{repo: repo, slotRepo: slotRepo, creativeRepo: creativeRepo}
}

// AdPlacementInput 创建/更新投放输入，nil 字段在更新时保持不变
type AdPlacementInput struct {
	SlotID     *uint
	CreativeID *uint
	Weight     *int
	ActiveFrom TimePatch
	ActiveTo   TimePatch
	IsActive   *bool
}

// List 投放列表
func (s *AdPlacementService) List(ctx context.Context, slotID, creativeID uint, isActive *bool, page, pageSize int) ([]models.AdPlacement, int64, error) {
	return s.repo.List(ctx, repository.AdPlacementListFilter{
		Page:          page,
		PageSize:      pageSize,
		SlotID:        slotID,
		CreativeID:    creativeID,
		IsActive:      isActive,
		WithRelations: true,
	})
}

// GetByID 获取投放
func (s *AdPlacementService) GetByID(ctx context.Context, id uint) (*models.AdPlacement, error) {
	placement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if placement == nil {
		return nil, ErrNotFound
	}
	return placement, nil
}

// Create 创建投放，广告位与素材必须存在
func (s *AdPlacementService) Create(ctx context.Context, input AdPlacementInput) (*models.AdPlacement, error) {
	if isZeroID(input.SlotID) {
		return nil, invalidf(ErrInvalidAdPlacement, "slot_id is required")
	}
	if isZeroID(input.CreativeID) {
		return nil, invalidf(ErrInvalidAdPlacement, "creative_id is required")
	}
	placement := &models.AdPlacement{Weight: 1, IsActive: true}
	if err := s.apply(ctx, placement, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, placement); err != nil {
		return nil, err
	}
	return placement, nil
}

// Update 更新投放
func (s *AdPlacementService) Update(ctx context.Context, id uint, input AdPlacementInput) (*models.AdPlacement, error) {
	placement, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, placement, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, placement); err != nil {
		return nil, err
	}
	return placement, nil
}

// Delete 删除投放
func (s *AdPlacementService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *AdPlacementService) apply(ctx context.Context, placement *models.AdPlacement, input AdPlacementInput) error {
	if input.SlotID != nil && *input.SlotID != placement.SlotID {
		slot, err := s.slotRepo.GetByID(ctx, *input.SlotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return invalidf(ErrInvalidAdPlacement, "slot %d does not exist", *input.SlotID)
		}
		placement.SlotID = slot.ID
	}
	if input.CreativeID != nil && *input.CreativeID != placement.CreativeID {
		creative, err := s.creativeRepo.GetByID(ctx, *input.CreativeID)
		if err != nil {
			return err
		}
		if creative == nil {
			return invalidf(ErrInvalidAdPlacement, "creative %d does not exist", *input.CreativeID)
		}
		placement.CreativeID = creative.ID
	}
	if input.Weight != nil {
		if *input.Weight < 0 {
			return invalidf(ErrInvalidAdPlacement, "weight must be >= 0")
		}
		placement.Weight = *input.Weight
	}
	if input.ActiveFrom.Set {
		placement.ActiveFrom = input.ActiveFrom.Value
	}
	if input.ActiveTo.Set {
		placement.ActiveTo = input.ActiveTo.Value
	}
	if input.IsActive != nil {
		placement.IsActive = *input.IsActive
	}
	if !validWindow(placement.ActiveFrom, placement.ActiveTo) {
		return invalidf(ErrInvalidAdPlacement, "active_to must not be before active_from")
	}
	return nil
}
