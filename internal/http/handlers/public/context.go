package public

import (
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// clientIP 按配置决定是否信任 X-Forwarded-For
func (h *Handler) clientIP(c *gin.Context) string {
	forwardedFor := ""
	if h.Config != nil && h.Config.Ads.TrustForwardedForChain {
		forwardedFor = c.GetHeader("X-Forwarded-For")
	}
	return service.ClientIP(forwardedFor, c.RemoteIP())
}
