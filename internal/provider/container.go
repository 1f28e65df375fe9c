package provider

import (
	"errors"
	"time"

	"github.com/newsportal/internal/authz"
	"github.com/newsportal/internal/cache"
	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/metrics"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/queue"
	"github.com/newsportal/internal/repository"
	"github.com/newsportal/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
// 数据库连接由调用方创建后注入，Close 负责统一释放。
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Metrics     *metrics.Metrics

	// Repositories
	AdSlotRepo      repository.AdSlotRepository
	AdCreativeRepo  repository.AdCreativeRepository
	AdPlacementRepo repository.AdPlacementRepository
	AdEventRepo     repository.AdEventRepository
	AdMetricRepo    repository.AdMetricRepository
	UserRepo        repository.UserRepository
	PostRepo        repository.PostRepository
	PostViewRepo    repository.PostViewRepository

	// Services
	AuthzService          *authz.Service
	AuthService           *service.AuthService
	AdSelectionService    *service.AdSelectionService
	AdMetricsService      *service.AdMetricsService
	AdMetricsQueryService *service.AdMetricsQueryService
	AdSlotService         *service.AdSlotService
	AdCreativeService     *service.AdCreativeService
	AdPlacementService    *service.AdPlacementService
	AdRetentionService    *service.AdRetentionService
	PostViewService       *service.PostViewService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if db == nil {
		return nil, errors.New("database is nil")
	}

	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，未启用时返回禁用状态的客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
		Metrics:     metrics.New(cfg.Metrics.Namespace),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		_ = queueClient.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	db := c.DB
	c.AdSlotRepo = repository.NewAdSlotRepository(db)
	c.AdCreativeRepo = repository.NewAdCreativeRepository(db)
	c.AdPlacementRepo = repository.NewAdPlacementRepository(db)
	c.AdEventRepo = repository.NewAdEventRepository(db)
	c.AdMetricRepo = repository.NewAdMetricRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.PostViewRepo = repository.NewPostViewRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	ads := c.Config.Ads
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.AdSelectionService = service.NewAdSelectionService(c.AdSlotRepo, c.AdPlacementRepo).
		WithObserver(c.Metrics)
	c.AdMetricsService = service.NewAdMetricsService(c.AdPlacementRepo, c.AdEventRepo, c.AdMetricRepo, service.AdMetricsOptions{
		BatchMaxEvents: ads.BatchMaxEvents,
		MaxSkew:        time.Duration(ads.EventTSMaxSkewHours) * time.Hour,
	}).WithObserver(c.Metrics)
	c.AdMetricsQueryService = service.NewAdMetricsQueryService(c.AdMetricRepo)
	c.AdSlotService = service.NewAdSlotService(c.AdSlotRepo)
	c.AdCreativeService = service.NewAdCreativeService(c.AdCreativeRepo, service.NewHTMLSanitizer(ads.HTMLPolicy))
	c.AdPlacementService = service.NewAdPlacementService(c.AdPlacementRepo, c.AdSlotRepo, c.AdCreativeRepo)
	c.AdRetentionService = service.NewAdRetentionService(c.AdEventRepo, c.QueueClient, ads.RawEventRetentionDays).
		WithObserver(c.Metrics)
	c.PostViewService = service.NewPostViewService(c.PostRepo, c.PostViewRepo).
		WithObserver(c.Metrics)
	return nil
}

// Close 释放队列、缓存与数据库连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if err := c.QueueClient.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := cache.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := models.CloseDB(c.DB); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
