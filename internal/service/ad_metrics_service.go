package service

import (
	"context"
	"time"

	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"

	"gorm.io/gorm"
)

// AdMetricsService 曝光/点击记录与日聚合维护
type AdMetricsService struct {
	placementRepo repository.AdPlacementRepository
	eventRepo     repository.AdEventRepository
	metricRepo    repository.AdMetricRepository
	metrics       eventsObserver
	batchMax      int
	maxSkew       time.Duration
	now           func() time.Time
}

type eventsObserver interface {
	ObserveEvent(eventType, result string)
}

// AdMetricsOptions 记录器参数
type AdMetricsOptions struct {
	BatchMaxEvents int
	MaxSkew        time.Duration
}

// ImpressionEvent 单次曝光
type ImpressionEvent struct {
	SlotID      uint
	PlacementID *uint
	CreativeID  *uint
	UID         *string
	SID         *string
	VisMS       *int
	UserAgent   string
	IP          string
}

// ClickEvent 单次点击
type ClickEvent struct {
	SlotID      uint
	PlacementID *uint
	CreativeID  *uint
	UID         *string
	SID         *string
	UserAgent   string
	IP          string
}

// BatchEvent 批量上报中的单个事件
type BatchEvent struct {
	Type        string
	SlotID      *uint
	PlacementID *uint
	CreativeID  *uint
	TS          *time.Time
	UID         *string
	SID         *string
	VisMS       *int
	UserAgent   string
	IP          string
}

// RecordResult 单次记录结果
type RecordResult struct {
	Deduplicated bool
}

// BatchResult 批量记录结果，计数只包含首次出现的事件
type BatchResult struct {
	Impressions int
	Clicks      int
}

// NewAdMetricsService 创建记录器
func NewAdMetricsService(
	placementRepo repository.AdPlacementRepository,
	eventRepo repository.AdEventRepository,
	metricRepo repository.AdMetricRepository,
	opts AdMetricsOptions,
) *AdMetricsService {
	if opts.BatchMaxEvents <= 0 || opts.BatchMaxEvents > constants.AdBatchMaxEvents {
		opts.BatchMaxEvents = constants.AdBatchMaxEvents
	}
	if opts.MaxSkew <= 0 {
		opts.MaxSkew = 48 * time.Hour
	}
	return &AdMetricsService{
		placementRepo: placementRepo,
		eventRepo:     eventRepo,
		metricRepo:    metricRepo,
		batchMax:      opts.BatchMaxEvents,
		maxSkew:       opts.MaxSkew,
		now:           time.Now,
	}
}

// WithClock 注入时钟
func (s *AdMetricsService) WithClock(now func() time.Time) *AdMetricsService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithObserver 注入指标
func (s *AdMetricsService) WithObserver(observer eventsObserver) *AdMetricsService {
	s.metrics = observer
	return s
}

// BatchMaxEvents 单次批量上报上限
func (s *AdMetricsService) BatchMaxEvents() int {
	return s.batchMax
}

// RecordImpression 记录曝光
// 原始日志按指纹去重，重复事件不累加日聚合。
func (s *AdMetricsService) RecordImpression(ctx context.Context, event ImpressionEvent) (*RecordResult, error) {
	event.PlacementID = normalizeID(event.PlacementID)
	event.CreativeID = normalizeID(event.CreativeID)
	if event.SlotID == 0 {
		return nil, invalidf(ErrInvalidAdEvent, "slot_id is required")
	}
	if event.VisMS != nil && *event.VisMS < 0 {
		return nil, invalidf(ErrInvalidAdEvent, "vis_ms must be >= 0")
	}
	creativeID, err := s.resolveCreative(ctx, event.PlacementID, event.CreativeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ymd := models.DateOf(now)
	row := &models.AdImpression{
		SlotID:      event.SlotID,
		PlacementID: event.PlacementID,
		CreativeID:  creativeID,
		YMD:         ymd,
		UserAgent:   truncateUserAgent(event.UserAgent),
		TS:          now,
		UID:         normalizeClientToken(event.UID),
		SID:         normalizeClientToken(event.SID),
		IP:          event.IP,
		VisMS:       event.VisMS,
	}
	row.Fingerprint = impressionFingerprint(row)

	var inserted bool
	err = s.metricRepo.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		inserted, err = s.eventRepo.WithTx(tx).InsertImpression(ctx, row)
		if err != nil || !inserted {
			return err
		}
		return s.metricRepo.WithTx(tx).IncrementDaily(ctx, repository.AdMetricDelta{
			YMD:         ymd,
			SlotID:      row.SlotID,
			CreativeID:  derefUint(creativeID),
			Impressions: 1,
		}, now)
	})
	s.observe(constants.AdEventImpression, inserted, err)
	if err != nil {
		return nil, err
	}
	return &RecordResult{Deduplicated: !inserted}, nil
}

// RecordClick 记录点击，去重方式与曝光一致
func (s *AdMetricsService) RecordClick(ctx context.Context, event ClickEvent) (*RecordResult, error) {
	event.PlacementID = normalizeID(event.PlacementID)
	event.CreativeID = normalizeID(event.CreativeID)
	if event.SlotID == 0 {
		return nil, invalidf(ErrInvalidAdEvent, "slot_id is required")
	}
	if isZeroID(event.CreativeID) && isZeroID(event.PlacementID) {
		return nil, invalidf(ErrInvalidAdEvent, "creative_id is required")
	}
	creativeID, err := s.resolveCreative(ctx, event.PlacementID, event.CreativeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ymd := models.DateOf(now)
	row := &models.AdClick{
		SlotID:      event.SlotID,
		PlacementID: event.PlacementID,
		CreativeID:  creativeID,
		YMD:         ymd,
		UserAgent:   truncateUserAgent(event.UserAgent),
		TS:          now,
		UID:         normalizeClientToken(event.UID),
		SID:         normalizeClientToken(event.SID),
		IP:          event.IP,
	}
	row.Fingerprint = clickFingerprint(row)

	var inserted bool
	err = s.metricRepo.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		inserted, err = s.eventRepo.WithTx(tx).InsertClick(ctx, row)
		if err != nil || !inserted {
			return err
		}
		return s.metricRepo.WithTx(tx).IncrementDaily(ctx, repository.AdMetricDelta{
			YMD:        ymd,
			SlotID:     row.SlotID,
			CreativeID: derefUint(creativeID),
			Clicks:     1,
		}, now)
	})
	s.observe(constants.AdEventClick, inserted, err)
	if err != nil {
		return nil, err
	}
	return &RecordResult{Deduplicated: !inserted}, nil
}

type metricGroupKey struct {
	ymd        models.Date
	slotID     uint
	creativeID uint
}

// RecordBatch 批量记录曝光/点击
// 原始日志写入与分组累加在同一事务内完成，失败整体回滚。
func (s *AdMetricsService) RecordBatch(ctx context.Context, events []BatchEvent) (*BatchResult, error) {
	if len(events) == 0 {
		return nil, invalidf(ErrInvalidAdEvent, "events must not be empty")
	}
	if len(events) > s.batchMax {
		return nil, invalidf(ErrInvalidAdEvent, "at most %d events per batch", s.batchMax)
	}
	lookupIDs := make([]uint, 0, len(events))
	for idx := range events {
		events[idx].PlacementID = normalizeID(events[idx].PlacementID)
		events[idx].CreativeID = normalizeID(events[idx].CreativeID)
		events[idx].SlotID = normalizeID(events[idx].SlotID)
		event := events[idx]
		if event.Type != constants.AdEventImpression && event.Type != constants.AdEventClick {
			return nil, invalidf(ErrInvalidAdEvent, "events[%d].type must be imp or click", idx)
		}
		if isZeroID(event.PlacementID) && isZeroID(event.SlotID) {
			return nil, invalidf(ErrInvalidAdEvent, "events[%d] requires placement_id or slot_id", idx)
		}
		if event.VisMS != nil && *event.VisMS < 0 {
			return nil, invalidf(ErrInvalidAdEvent, "events[%d].vis_ms must be >= 0", idx)
		}
		if !isZeroID(event.PlacementID) && (isZeroID(event.SlotID) || isZeroID(event.CreativeID)) {
			lookupIDs = append(lookupIDs, *event.PlacementID)
		}
	}

	placements, err := s.placementRepo.FindByIDs(ctx, uniqueIDs(lookupIDs))
	if err != nil {
		return nil, err
	}

	now := s.now()
	impressions := make([]*models.AdImpression, 0, len(events))
	clicks := make([]*models.AdClick, 0, len(events))
	for _, event := range events {
		slotID := derefUint(event.SlotID)
		creativeID := event.CreativeID
		if !isZeroID(event.PlacementID) {
			if placement, ok := placements[*event.PlacementID]; ok {
				if slotID == 0 {
					slotID = placement.SlotID
				}
				if isZeroID(creativeID) {
					resolved := placement.CreativeID
					creativeID = &resolved
				}
			}
		}
		ts := s.eventTime(event.TS, now)
		ymd := models.DateOf(ts)
		uid := normalizeClientToken(event.UID)
		sid := normalizeClientToken(event.SID)
		ua := truncateUserAgent(event.UserAgent)

		if event.Type == constants.AdEventImpression {
			row := &models.AdImpression{
				SlotID: slotID, PlacementID: event.PlacementID, CreativeID: creativeID,
				YMD: ymd, UserAgent: ua, TS: ts, UID: uid, SID: sid, IP: event.IP, VisMS: event.VisMS,
			}
			row.Fingerprint = impressionFingerprint(row)
			impressions = append(impressions, row)
			continue
		}
		row := &models.AdClick{
			SlotID: slotID, PlacementID: event.PlacementID, CreativeID: creativeID,
			YMD: ymd, UserAgent: ua, TS: ts, UID: uid, SID: sid, IP: event.IP,
		}
		row.Fingerprint = clickFingerprint(row)
		clicks = append(clicks, row)
	}

	result := &BatchResult{}
	err = s.metricRepo.Transaction(ctx, func(tx *gorm.DB) error {
		result.Impressions, result.Clicks = 0, 0
		eventRepo := s.eventRepo.WithTx(tx)
		groups := make(map[metricGroupKey]*repository.AdMetricDelta)
		order := make([]metricGroupKey, 0)
		group := func(ymd models.Date, slotID uint, creativeID *uint) *repository.AdMetricDelta {
			key := metricGroupKey{ymd: ymd, slotID: slotID, creativeID: derefUint(creativeID)}
			delta, ok := groups[key]
			if !ok {
				delta = &repository.AdMetricDelta{YMD: key.ymd, SlotID: key.slotID, CreativeID: key.creativeID}
				groups[key] = delta
				order = append(order, key)
			}
			return delta
		}

		for _, row := range impressions {
			inserted, err := eventRepo.InsertImpression(ctx, row)
			if err != nil {
				return err
			}
			if inserted {
				group(row.YMD, row.SlotID, row.CreativeID).Impressions++
				result.Impressions++
			}
		}
		for _, row := range clicks {
			inserted, err := eventRepo.InsertClick(ctx, row)
			if err != nil {
				return err
			}
			if inserted {
				group(row.YMD, row.SlotID, row.CreativeID).Clicks++
				result.Clicks++
			}
		}

		metricRepo := s.metricRepo.WithTx(tx)
		for _, key := range order {
			if err := metricRepo.IncrementDaily(ctx, *groups[key], now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.observe(constants.AdEventBatch, false, err)
		return nil, err
	}
	s.observeBatch(constants.AdEventImpression, result.Impressions, len(impressions))
	s.observeBatch(constants.AdEventClick, result.Clicks, len(clicks))
	return result, nil
}

// eventTime 事件时间超出允许偏差时使用服务器时间
func (s *AdMetricsService) eventTime(ts *time.Time, now time.Time) time.Time {
	if ts == nil || ts.IsZero() {
		return now
	}
	if ts.Before(now.Add(-s.maxSkew)) || ts.After(now.Add(s.maxSkew)) {
		return now
	}
	return *ts
}

// resolveCreative 未携带 creative_id 时从投放补齐
func (s *AdMetricsService) resolveCreative(ctx context.Context, placementID, creativeID *uint) (*uint, error) {
	if !isZeroID(creativeID) || isZeroID(placementID) {
		return creativeID, nil
	}
	placement, err := s.placementRepo.GetByID(ctx, *placementID)
	if err != nil {
		return nil, err
	}
	if placement == nil {
		return creativeID, nil
	}
	resolved := placement.CreativeID
	return &resolved, nil
}

func (s *AdMetricsService) observe(eventType string, inserted bool, err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err != nil:
		s.metrics.ObserveEvent(eventType, constants.AdEventResultFailed)
	case inserted:
		s.metrics.ObserveEvent(eventType, constants.AdEventResultCounted)
	default:
		s.metrics.ObserveEvent(eventType, constants.AdEventResultDedup)
	}
}

func (s *AdMetricsService) observeBatch(eventType string, counted, total int) {
	for i := 0; i < total; i++ {
		s.observe(eventType, i < counted, nil)
	}
}

func impressionFingerprint(row *models.AdImpression) string {
	return eventFingerprint(constants.AdEventImpression, row.YMD.String(),
		uintPart(row.SlotID),
		optionalUintPart(row.PlacementID),
		optionalUintPart(row.CreativeID),
		optionalStringPart(row.UID),
		optionalStringPart(row.SID),
		row.IP,
		row.UserAgent,
	)
}

func clickFingerprint(row *models.AdClick) string {
	return eventFingerprint(constants.AdEventClick, row.YMD.String(),
		uintPart(row.SlotID),
		optionalUintPart(row.PlacementID),
		optionalUintPart(row.CreativeID),
		optionalStringPart(row.UID),
		optionalStringPart(row.SID),
		row.IP,
		row.UserAgent,
	)
}

func normalizeID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

func isZeroID(id *uint) bool {
	return id == nil || *id == 0
}

func derefUint(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
