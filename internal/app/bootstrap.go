package app

import (
	"errors"
	"fmt"

	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/provider"
	"github.com/newsportal/internal/router"
	"github.com/newsportal/internal/worker"

	"gorm.io/gorm"
)

// OpenDatabase 按配置打开数据库，开启 auto_migrate 时迁移广告相关表
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.Mode == "debug")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			_ = models.CloseDB(db)
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Infow("database_migrated", "driver", cfg.Database.Driver)
	}
	return db, nil
}

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string, container *provider.Container) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if container == nil {
		return nil, errors.New("container is nil")
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	// 初始化 Worker 服务，all 模式下队列未启用时只运行 HTTP
	if mode == ModeAll || mode == ModeWorker {
		if !cfg.Queue.Enabled && mode == ModeAll {
			logger.Warnw("worker_skipped_queue_disabled")
		} else {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, cfg.Worker.PruneCron, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no services initialized for mode %q", mode)
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	db, err := OpenDatabase(opts.Config)
	if err != nil {
		return err
	}
	container, err := provider.NewContainer(opts.Config, db)
	if err != nil {
		_ = models.CloseDB(db)
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			opts.Logger.Warnw("app_container_close_failed", "error", err)
		}
	}()

	runner, err := BuildRunner(opts.Config, opts.Mode, container)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
