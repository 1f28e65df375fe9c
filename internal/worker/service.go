package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务，包含任务消费与定时投递
type Service struct {
	name      string
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	consumer  *Consumer
}

// NewService 创建异步队列服务
// pruneCron 为空时不注册定时清理。
func NewService(cfg *config.QueueConfig, pruneCron string, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	svc := &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}
	if cron := strings.TrimSpace(pruneCron); cron != "" {
		scheduler, err := newPruneScheduler(opt, cron)
		if err != nil {
			return nil, err
		}
		svc.scheduler = scheduler
	}
	return svc, nil
}

func newPruneScheduler(opt asynq.RedisClientOpt, cron string) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: constants.AdDayZone,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Warnw("worker_scheduler_enqueue_failed", "task", queue.TaskAdEventsPrune, "error", err)
				return
			}
			logger.Debugw("worker_scheduler_enqueued", "task", info.Type, "task_id", info.ID)
		},
	})
	task, err := queue.NewAdEventsPruneTask(queue.AdEventsPrunePayload{Source: "schedule"})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(cron, task, asynq.Queue(queue.MaintenanceQueue)); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return err
		}
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	// 由 Runner 统一处理信号，这里只等待退出
	<-ctx.Done()
	return nil
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	s.server.Shutdown()
	return nil
}
