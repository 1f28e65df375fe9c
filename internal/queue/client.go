package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// MaintenanceQueue 维护类任务队列
	MaintenanceQueue = constants.QueueMaintenance

	pruneUniqueTTL = 10 * time.Minute
)

// ErrDisabled 队列未启用
var ErrDisabled = errors.New("queue disabled")

// Client 队列客户端封装
type Client struct {
	client           *asynq.Client
	enabled          bool
	maintenanceQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, maintenanceQueue: MaintenanceQueue}, nil
	}
	opt := BuildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:           client,
		enabled:          true,
		maintenanceQueue: MaintenanceQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueAdEventsPrune 推送原始日志清理任务，返回任务 ID
// 同一时间窗口内重复提交会被 asynq 去重。
func (c *Client) EnqueueAdEventsPrune(ctx context.Context, payload AdEventsPrunePayload, opts ...asynq.Option) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	task, err := NewAdEventsPruneTask(payload)
	if err != nil {
		return "", err
	}
	options := append([]asynq.Option{
		asynq.Queue(c.maintenanceQueue),
		asynq.Unique(pruneUniqueTTL),
		asynq.MaxRetry(3),
	}, opts...)
	info, err := c.client.EnqueueContext(ctx, task, options...)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := BuildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 3, MaintenanceQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

// BuildRedisOpt 生成 asynq 的 Redis 连接参数
func BuildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
