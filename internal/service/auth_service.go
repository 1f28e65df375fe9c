package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/newsportal/internal/cache"
	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService 后台认证服务（基于 WordPress 用户表）
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// WithClock 替换时钟（测试使用）
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	if now != nil {
		s.now = now
	}
	return s
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID    uint   `json:"user_id"`
	UserLogin string `json:"user_login"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(user *models.WPUser) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID:    user.ID,
		UserLogin: user.UserLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login 使用 WordPress 账号登录后台
func (s *AuthService) Login(ctx context.Context, login, password string) (*models.WPUser, string, time.Time, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil || !CheckWordPressPassword(password, user.UserPass) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	// 登录时刷新角色快照，避免沿用旧权限
	if err := cache.DelCapabilityState(ctx, user.ID); err != nil {
		logger.Warnw("auth_capability_cache_del_failed", "user_id", user.ID, "error", err)
	}
	return user, token, expiresAt, nil
}

// capabilitiesMetaKey usermeta 中保存角色的键，例如 wp_capabilities
func (s *AuthService) capabilitiesMetaKey() string {
	prefix := "wp_"
	if s.cfg != nil && strings.TrimSpace(s.cfg.Database.TablePrefix) != "" {
		prefix = strings.TrimSpace(s.cfg.Database.TablePrefix)
	}
	return prefix + constants.UserMetaCapabilitiesSuffix
}

// LoadRoles 读取用户已授予的 WordPress 角色
func (s *AuthService) LoadRoles(ctx context.Context, userID uint) ([]string, error) {
	if userID == 0 {
		return nil, nil
	}
	if state, hit, err := cache.GetCapabilityState(ctx, userID); err != nil {
		logger.Warnw("auth_capability_cache_get_failed", "user_id", userID, "error", err)
	} else if hit && state != nil {
		return state.Roles, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	raw, ok, err := s.userRepo.GetMeta(ctx, userID, s.capabilitiesMetaKey())
	if err != nil {
		return nil, err
	}
	roles := map[string]bool{}
	if ok {
		roles = ParseCapabilities(raw)
	}
	state := cache.BuildCapabilityState(userID, roles)
	if err := cache.SetCapabilityState(ctx, state); err != nil {
		logger.Warnw("auth_capability_cache_set_failed", "user_id", userID, "error", err)
	}
	return state.Roles, nil
}

// IsAdmin 判断用户是否为站点管理员
func (s *AuthService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	roles, err := s.LoadRoles(ctx, userID)
	if err != nil {
		return false, err
	}
	state := &cache.CapabilityState{UserID: userID, Roles: roles}
	return state.HasRole(constants.RoleAdministrator), nil
}

// Authenticate 解析令牌并返回对应用户
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*JWTClaims, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsCredentialsError 是否为凭据错误
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken)
}
