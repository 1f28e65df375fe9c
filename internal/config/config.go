package config

import (
	"fmt"
	"strings"

	"github.com/newsportal/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Ads      AdsConfig      `mapstructure:"ads"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Level,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver      string             `mapstructure:"driver"`       // 数据库驱动（mysql/postgres/sqlite）
	DSN         string             `mapstructure:"dsn"`          // 数据库连接串
	TablePrefix string             `mapstructure:"table_prefix"` // WordPress 表前缀，用于读取 usermeta 中的权限键
	AutoMigrate bool               `mapstructure:"auto_migrate"` // 启动时迁移广告相关表
	Pool        DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit    RateLimitConfig `mapstructure:"login_rate_limit"`
	TrackingRateLimit RateLimitConfig `mapstructure:"tracking_rate_limit"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// AdsConfig 广告投放与统计配置
type AdsConfig struct {
	HTMLPolicy             string `mapstructure:"html_policy"` // raw / ugc / strict
	BatchMaxEvents         int    `mapstructure:"batch_max_events"`
	EventTSMaxSkewHours    int    `mapstructure:"event_ts_max_skew_hours"`
	RawEventRetentionDays  int    `mapstructure:"raw_event_retention_days"`
	TrustForwardedForChain bool   `mapstructure:"trust_forwarded_for"`
}

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// WorkerConfig 后台任务配置
type WorkerConfig struct {
	PruneCron string `mapstructure:"prune_cron"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	// 本地开发允许使用 .env，文件不存在时忽略
	if err := godotenv.Load(); err == nil {
		logger.Infow("dotenv_loaded", "file", ".env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("./etc")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // server.port -> SERVER_PORT

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := decode(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if strings.TrimSpace(c.Database.TablePrefix) == "" {
		c.Database.TablePrefix = "wp_"
	}
	switch strings.ToLower(strings.TrimSpace(c.Ads.HTMLPolicy)) {
	case "ugc", "strict":
		c.Ads.HTMLPolicy = strings.ToLower(strings.TrimSpace(c.Ads.HTMLPolicy))
	default:
		c.Ads.HTMLPolicy = "raw"
	}
	if c.Ads.BatchMaxEvents <= 0 || c.Ads.BatchMaxEvents > 200 {
		c.Ads.BatchMaxEvents = 200
	}
	if c.Ads.EventTSMaxSkewHours <= 0 {
		c.Ads.EventTSMaxSkewHours = 48
	}
	if c.Ads.RawEventRetentionDays <= 0 {
		c.Ads.RawEventRetentionDays = 90
	}
	if strings.TrimSpace(c.Metrics.Path) == "" {
		c.Metrics.Path = "/metrics"
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "wordpress:wordpress@tcp(127.0.0.1:3306)/wordpress?charset=utf8mb4&parseTime=true&loc=Local")
	v.SetDefault("database.table_prefix", "wp_")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.pool.max_open_conns", 20)
	v.SetDefault("database.pool.max_idle_conns", 5)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 300)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 60)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "np")
	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.queues", map[string]int{
		"default":     5,
		"maintenance": 1,
	})
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_attempts", 5)
	v.SetDefault("security.tracking_rate_limit.window_seconds", 60)
	v.SetDefault("security.tracking_rate_limit.max_attempts", 600)
	v.SetDefault("ads.html_policy", "raw")
	v.SetDefault("ads.batch_max_events", 200)
	v.SetDefault("ads.event_ts_max_skew_hours", 48)
	v.SetDefault("ads.raw_event_retention_days", 90)
	v.SetDefault("ads.trust_forwarded_for", true)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "newsportal")
	v.SetDefault("worker.prune_cron", "30 3 * * *")
}
