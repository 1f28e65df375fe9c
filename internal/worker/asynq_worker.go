package worker

import (
	"context"
	"fmt"

	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/provider"
	"github.com/newsportal/internal/queue"
	"github.com/newsportal/internal/service"

	"github.com/hibiken/asynq"
)

type eventsPruner interface {
	Prune(ctx context.Context, retentionDays int) (*service.AdPruneReport, error)
}

// Consumer 异步任务消费者
type Consumer struct {
	Retention eventsPruner
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil {
		return &Consumer{}
	}
	return &Consumer{
		Retention: c.AdRetentionService,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAdEventsPrune, c.handleAdEventsPrune)
}

func (c *Consumer) handleAdEventsPrune(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_ads_prune_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseAdEventsPrunePayload(task)
	if err != nil {
		logger.Warnw("worker_ads_prune_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if c.Retention == nil {
		logger.Warnw("worker_ads_prune_skip_service_nil", "source", payload.Source)
		return nil
	}
	report, err := c.Retention.Prune(ctx, payload.RetentionDays)
	if err != nil {
		logger.Warnw("worker_ads_prune_failed",
			"retention_days", payload.RetentionDays,
			"source", payload.Source,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_ads_prune_done",
		"cutoff", report.Cutoff.String(),
		"impressions", report.Impressions,
		"clicks", report.Clicks,
		"source", payload.Source,
		"requested_by", payload.RequestedBy,
	)
	return nil
}
