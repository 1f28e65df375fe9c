package router

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/newsportal/internal/authz"
	"github.com/newsportal/internal/config"
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = logger.FieldRequestID
const requestIDHeader = "X-Request-ID"

type tokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*service.JWTClaims, error)
}

type roleLoader interface {
	LoadRoles(ctx context.Context, userID uint) ([]string, error)
}

type roleEnforcer interface {
	EnforceRoles(roles []string, obj, act string) (bool, error)
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Authorization",
			"X-Requested-With",
			requestIDHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// NoStoreMiddleware 所有响应禁止缓存
// 选取结果与计数随时变化，CDN 与浏览器都不能复用。
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-store")
		c.Next()
	}
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			logger.FieldRequestID, getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// JWTAuthMiddleware 后台 JWT 鉴权中间件
func JWTAuthMiddleware(auth tokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			response.Abort(c, response.CodeUnauthorized, "authentication unavailable")
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, response.CodeUnauthorized, "authorization header is missing")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			response.Abort(c, response.CodeUnauthorized, "authorization header must be Bearer")
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if !service.IsCredentialsError(err) {
				logger.Errorw("admin_jwt_authenticate_failed", logger.FieldRequestID, getRequestID(c), "error", err)
			}
			response.Abort(c, response.CodeUnauthorized, "token is invalid or expired")
			return
		}

		c.Set(handlershared.ContextUserID, claims.UserID)
		c.Set(handlershared.ContextUserLogin, claims.UserLogin)
		c.Next()
	}
}

// AdminGuardMiddleware 按 WordPress 角色执行路由级授权
func AdminGuardMiddleware(roles roleLoader, enforcer roleEnforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if roles == nil || enforcer == nil {
			logger.Errorw("admin_guard_unavailable")
			response.Abort(c, response.CodeUnauthorized, "unauthorized")
			return
		}

		userIDRaw, exists := c.Get(handlershared.ContextUserID)
		userID, _ := userIDRaw.(uint)
		if !exists || userID == 0 {
			response.Abort(c, response.CodeUnauthorized, "unauthorized")
			return
		}

		granted, err := roles.LoadRoles(c.Request.Context(), userID)
		if err != nil {
			logger.Errorw("admin_guard_load_roles_failed", "user_id", userID, "error", err)
			response.Abort(c, response.CodeInternal, "internal error")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := enforcer.EnforceRoles(granted, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_guard_enforce_failed",
				"user_id", userID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Abort(c, response.CodeInternal, "internal error")
			return
		}
		if !allowed {
			logger.Warnw("admin_guard_permission_denied",
				"user_id", userID,
				"roles", granted,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Abort(c, response.CodeForbidden, "forbidden")
			return
		}

		c.Set(handlershared.ContextRoles, granted)
		c.Next()
	}
}
