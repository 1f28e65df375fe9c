package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"
)

// AdSelectionService 广告选取引擎
// 纯读操作，不记录曝光。
type AdSelectionService struct {
	slotRepo      repository.AdSlotRepository
	placementRepo repository.AdPlacementRepository
	metrics       picksObserver
	now           func() time.Time
	randFloat     func() float64
}

type picksObserver interface {
	ObservePick(result string)
}

// AdSelection 选取结果
type AdSelection struct {
	Slot      models.AdSlot
	Placement repository.AdEligibleRow
}

// NewAdSelectionService 创建选取服务
func NewAdSelectionService(slotRepo repository.AdSlotRepository, placementRepo repository.AdPlacementRepository) *AdSelectionService {
	return &AdSelectionService{
		slotRepo:      slotRepo,
		placementRepo: placementRepo,
		now:           time.Now,
		randFloat:     rand.Float64,
	}
}

// WithClock 注入时钟
func (s *AdSelectionService) WithClock(now func() time.Time) *AdSelectionService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithRandom 注入 [0,1) 随机源
func (s *AdSelectionService) WithRandom(randFloat func() float64) *AdSelectionService {
	if randFloat != nil {
		s.randFloat = randFloat
	}
	return s
}

// WithObserver 注入指标
func (s *AdSelectionService) WithObserver(observer picksObserver) *AdSelectionService {
	s.metrics = observer
	return s
}

// PickForSlot 按权重为广告位选取一个投放
func (s *AdSelectionService) PickForSlot(ctx context.Context, slotKey string) (*AdSelection, error) {
	selection, err := s.pick(ctx, slotKey)
	s.observe(err)
	return selection, err
}

func (s *AdSelectionService) pick(ctx context.Context, slotKey string) (*AdSelection, error) {
	slotKey = strings.TrimSpace(slotKey)
	if slotKey == "" {
		return nil, ErrSlotNotFound
	}
	slot, err := s.slotRepo.GetByKey(ctx, slotKey)
	if err != nil {
		return nil, err
	}
	if slot == nil || !slot.Enabled {
		return nil, ErrSlotNotFound
	}

	rows, err := s.placementRepo.ListEligibleBySlot(ctx, slot.ID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoEligibleCreative
	}

	return &AdSelection{
		Slot:      *slot,
		Placement: pickWeighted(rows, s.randFloat),
	}, nil
}

func (s *AdSelectionService) observe(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.metrics.ObservePick(constants.AdPickResultServed)
	case errors.Is(err, ErrSlotNotFound):
		s.metrics.ObservePick(constants.AdPickResultSlotNotFound)
	case errors.Is(err, ErrNoEligibleCreative):
		s.metrics.ObservePick(constants.AdPickResultNoEligible)
	default:
		s.metrics.ObservePick(constants.AdPickResultFailed)
	}
}

// pickWeighted 线性扫描加权随机
// 总权重为 0 时返回第一行；浮点残差导致未命中时返回最后一行。
func pickWeighted(rows []repository.AdEligibleRow, randFloat func() float64) repository.AdEligibleRow {
	total := 0.0
	for _, row := range rows {
		if row.PlacementWeight > 0 {
			total += float64(row.PlacementWeight)
		}
	}
	if total <= 0 {
		return rows[0]
	}

	r := randFloat() * total
	for _, row := range rows {
		if row.PlacementWeight <= 0 {
			continue
		}
		r -= float64(row.PlacementWeight)
		if r <= 0 {
			return row
		}
	}
	return rows[len(rows)-1]
}
