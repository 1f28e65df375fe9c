package app

import (
	"os"
	"strings"
	"time"

	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/logger"

	"go.uber.org/zap"
)

// 启动模式
const (
	ModeAll    = "all"    // API + 后台任务
	ModeAPI    = "api"    // 仅 HTTP
	ModeWorker = "worker" // 仅 asynq worker 与定时清理
)

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultStopTimeout
	}
	opts.Mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
