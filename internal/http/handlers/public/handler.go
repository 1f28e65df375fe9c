package public

import "github.com/newsportal/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器用于渲染端脚本调用的选取与埋点 API，不需要登录。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
