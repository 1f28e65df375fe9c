package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("not found")
	// ErrSlotNotFound 广告位不存在或已关闭
	ErrSlotNotFound = errors.New("slot not found")
	// ErrNoEligibleCreative 广告位下没有可投放的素材
	ErrNoEligibleCreative = errors.New("no eligible creative")

	// ErrInvalidAdSlot 广告位参数无效
	ErrInvalidAdSlot = errors.New("invalid ad slot")
	// ErrSlotKeyExists slot_key 已被占用
	ErrSlotKeyExists = errors.New("slot key already exists")
	// ErrInvalidAdCreative 素材参数无效
	ErrInvalidAdCreative = errors.New("invalid ad creative")
	// ErrInvalidAdPlacement 投放参数无效
	ErrInvalidAdPlacement = errors.New("invalid ad placement")
	// ErrInvalidAdEvent 曝光/点击事件无效
	ErrInvalidAdEvent = errors.New("invalid ad event")
	// ErrInvalidMetricsQuery 报表查询参数无效
	ErrInvalidMetricsQuery = errors.New("invalid metrics query")

	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken 令牌无效或已过期
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden 无管理权限
	ErrForbidden = errors.New("forbidden")

	// ErrPostNotFound 文章不存在或未发布
	ErrPostNotFound = errors.New("post not found")
	// ErrQueueUnavailable 异步队列未启用
	ErrQueueUnavailable = errors.New("queue unavailable")
)

// invalidf 包装参数错误，保留可展示给调用方的原因
func invalidf(base error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}
