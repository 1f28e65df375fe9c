package service

import (
	"context"
	"errors"
	"time"

	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/queue"
	"github.com/newsportal/internal/repository"

	"github.com/hibiken/asynq"
)

type pruneObserver interface {
	ObservePrune(eventType string, rows int64)
}

type pruneEnqueuer interface {
	EnqueueAdEventsPrune(ctx context.Context, payload queue.AdEventsPrunePayload, opts ...asynq.Option) (string, error)
}

// AdRetentionService 原始曝光/点击日志保留策略
// 只清理原始日志，日聚合数据永久保留。
type AdRetentionService struct {
	eventRepo     repository.AdEventRepository
	queue         pruneEnqueuer
	metrics       pruneObserver
	retentionDays int
	now           func() time.Time
}

// AdPruneReport 清理结果
type AdPruneReport struct {
	Cutoff      models.Date `json:"cutoff"`
	Impressions int64       `json:"impressions"`
	Clicks      int64       `json:"clicks"`
}

// NewAdRetentionService 创建保留策略服务
func NewAdRetentionService(eventRepo repository.AdEventRepository, queueClient pruneEnqueuer, retentionDays int) *AdRetentionService {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &AdRetentionService{
		eventRepo:     eventRepo,
		queue:         queueClient,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// WithClock 注入时钟
func (s *AdRetentionService) WithClock(now func() time.Time) *AdRetentionService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithObserver 注入指标
func (s *AdRetentionService) WithObserver(observer pruneObserver) *AdRetentionService {
	s.metrics = observer
	return s
}

// RetentionDays 默认保留天数
func (s *AdRetentionService) RetentionDays() int {
	return s.retentionDays
}

// Cutoff 计算保留截止日期，ymd 早于截止日期的日志会被删除
func (s *AdRetentionService) Cutoff(retentionDays int) models.Date {
	if retentionDays <= 0 {
		retentionDays = s.retentionDays
	}
	return models.DateOf(s.now().AddDate(0, 0, -retentionDays))
}

// Prune 立即执行清理
func (s *AdRetentionService) Prune(ctx context.Context, retentionDays int) (*AdPruneReport, error) {
	cutoff := s.Cutoff(retentionDays)
	result, err := s.eventRepo.PruneBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObservePrune(constants.AdEventImpression, result.Impressions)
		s.metrics.ObservePrune(constants.AdEventClick, result.Clicks)
	}
	logger.Infow("ads_events_pruned",
		"cutoff", cutoff.String(),
		"impressions", result.Impressions,
		"clicks", result.Clicks,
	)
	return &AdPruneReport{Cutoff: cutoff, Impressions: result.Impressions, Clicks: result.Clicks}, nil
}

// Enqueue 提交异步清理任务
func (s *AdRetentionService) Enqueue(ctx context.Context, retentionDays int, requestedBy uint) (string, error) {
	if retentionDays < 0 {
		return "", invalidf(ErrInvalidAdEvent, "retention_days must be >= 0")
	}
	if s.queue == nil {
		return "", ErrQueueUnavailable
	}
	taskID, err := s.queue.EnqueueAdEventsPrune(ctx, queue.AdEventsPrunePayload{
		RetentionDays: retentionDays,
		RequestedBy:   requestedBy,
		Source:        "admin",
	})
	if err != nil {
		if errors.Is(err, queue.ErrDisabled) {
			return "", ErrQueueUnavailable
		}
		return "", err
	}
	return taskID, nil
}
