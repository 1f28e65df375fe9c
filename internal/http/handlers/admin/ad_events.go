package admin

import (
	"errors"
	"net/http"

	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

// PruneAdEventsRequest 原始事件清理请求
// RetentionDays 为空时使用配置值；Sync 为 true 时在请求内直接执行。
type PruneAdEventsRequest struct {
	RetentionDays *int `json:"retention_days"`
	Sync          bool `json:"sync"`
}

// PruneAdEvents 清理过期的曝光/点击原始记录
// 队列未启用时退化为同步执行。
func (h *Handler) PruneAdEvents(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req PruneAdEventsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "invalid prune payload", nil)
			return
		}
	}
	days := h.AdRetentionService.RetentionDays()
	if req.RetentionDays != nil {
		days = *req.RetentionDays
	}

	if !req.Sync {
		taskID, err := h.AdRetentionService.Enqueue(c.Request.Context(), days, userID)
		if err == nil {
			c.JSON(http.StatusAccepted, response.DataResponse{Data: gin.H{
				"task_id":        taskID,
				"retention_days": days,
			}})
			return
		}
		if !errors.Is(err, service.ErrQueueUnavailable) {
			handlershared.RespondMappedError(c, err, pruneErrorRules)
			return
		}
		handlershared.RequestLog(c).Infow("admin_ads_prune_fallback_sync", "retention_days", days)
	}

	if days < 0 {
		respondError(c, response.CodeUnprocessableEntity, "retention_days must be >= 0", nil)
		return
	}
	report, err := h.AdRetentionService.Prune(c.Request.Context(), days)
	if err != nil {
		handlershared.RespondMappedError(c, err, pruneErrorRules)
		return
	}
	response.Success(c, report)
}
