package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdMetricsSummary 按天汇总曝光与点击
func (h *Handler) GetAdMetricsSummary(c *gin.Context) {
	slotID, ok := optionalUintQuery(c, "slotId", "slot_id")
	if !ok {
		return
	}
	creativeID, ok := optionalUintQuery(c, "creativeId", "creative_id")
	if !ok {
		return
	}
	rows, err := h.AdMetricsQueryService.Summary(c.Request.Context(), service.SummaryQuery{
		From:       c.Query("from"),
		To:         c.Query("to"),
		SlotID:     slotID,
		CreativeID: creativeID,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, metricsQueryErrorRules)
		return
	}
	response.JSON(c, gin.H{"rows": rows})
}

// GetAdMetricsTop 广告位或素材排行
func (h *Handler) GetAdMetricsTop(c *gin.Context) {
	slotID, ok := optionalUintQuery(c, "slotId", "slot_id")
	if !ok {
		return
	}
	creativeID, ok := optionalUintQuery(c, "creativeId", "creative_id")
	if !ok {
		return
	}
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "limit must be an integer", nil)
			return
		}
		limit = parsed
	}
	rows, err := h.AdMetricsQueryService.Top(c.Request.Context(), service.TopQuery{
		Kind:       c.DefaultQuery("kind", "slot"),
		From:       c.Query("from"),
		To:         c.Query("to"),
		Limit:      limit,
		SlotID:     slotID,
		CreativeID: creativeID,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, metricsQueryErrorRules)
		return
	}
	response.JSON(c, gin.H{"rows": rows})
}
