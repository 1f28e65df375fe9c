package router

import (
	"fmt"
	"strings"

	"github.com/newsportal/internal/cache"
	"github.com/newsportal/internal/config"
	adminhandlers "github.com/newsportal/internal/http/handlers/admin"
	publichandlers "github.com/newsportal/internal/http/handlers/public"
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	if err := handlershared.RegisterValidators(); err != nil {
		logger.Errorw("router_register_validators_failed", "error", err)
	}
	r := gin.New()

	// 初始化 Handler（按公开/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "np"
	}
	redisClient := cache.Client()
	clientIPKey := KeyByClientIP(cfg.Ads.TrustForwardedForChain)
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}
	trackingRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:tracking", redisPrefix),
		WindowSeconds: cfg.Security.TrackingRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.TrackingRateLimit.MaxAttempts,
		Message:       "too many tracking events",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(NoStoreMiddleware())

	jwtAuth := JWTAuthMiddleware(c.AuthService)
	adminGuard := AdminGuardMiddleware(c.AuthService, c.AuthzService)

	apiV1 := r.Group("/api/v1")
	{
		// 广告选取
		apiV1.GET("/pick", publicHandler.PickAd)
		apiV1.GET("/placements/active", publicHandler.GetActivePlacement)

		// 埋点上报
		tracking := apiV1.Group("")
		tracking.Use(RateLimitMiddleware(redisClient, trackingRule, clientIPKey))
		{
			tracking.POST("/ads/metrics/impression", publicHandler.RecordImpression)
			tracking.POST("/ads/metrics/click", publicHandler.RecordClick)
			tracking.POST("/ads/metrics/batch", publicHandler.RecordBatch)
			tracking.POST("/posts/:id/view", publicHandler.RecordPostView)
		}
		apiV1.GET("/posts/:id/views", publicHandler.GetPostViews)

		// 报表（需管理员）
		reports := apiV1.Group("/ads/metrics")
		reports.Use(jwtAuth, adminGuard)
		{
			reports.GET("/summary", adminHandler.GetAdMetricsSummary)
			reports.GET("/top", adminHandler.GetAdMetricsTop)
		}

		// 后台接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username", clientIPKey)), adminHandler.Login)

			authorized := admin.Group("")
			authorized.Use(jwtAuth, adminGuard)
			{
				authorized.GET("/me", adminHandler.GetMe)

				authorized.GET("/ads/slots", adminHandler.ListAdSlots)
				authorized.POST("/ads/slots", adminHandler.CreateAdSlot)
				authorized.GET("/ads/slots/:id", adminHandler.GetAdSlot)
				authorized.PATCH("/ads/slots/:id", adminHandler.UpdateAdSlot)
				authorized.DELETE("/ads/slots/:id", adminHandler.DeleteAdSlot)

				authorized.GET("/ads/creatives", adminHandler.ListAdCreatives)
				authorized.POST("/ads/creatives", adminHandler.CreateAdCreative)
				authorized.GET("/ads/creatives/:id", adminHandler.GetAdCreative)
				authorized.PATCH("/ads/creatives/:id", adminHandler.UpdateAdCreative)
				authorized.DELETE("/ads/creatives/:id", adminHandler.DeleteAdCreative)

				authorized.GET("/ads/placements", adminHandler.ListAdPlacements)
				authorized.POST("/ads/placements", adminHandler.CreateAdPlacement)
				authorized.GET("/ads/placements/:id", adminHandler.GetAdPlacement)
				authorized.PATCH("/ads/placements/:id", adminHandler.UpdateAdPlacement)
				authorized.DELETE("/ads/placements/:id", adminHandler.DeleteAdPlacement)

				authorized.POST("/ads/events/prune", adminHandler.PruneAdEvents)
			}
		}
	}

	// Prometheus 指标
	if cfg.Metrics.Enabled && c.Metrics != nil {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(c.Metrics.Handler()))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
