package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

// unix 毫秒与秒的分界，大于该值按毫秒解析
const unixMillisThreshold = 1e12

// ImpressionRequest 曝光上报
type ImpressionRequest struct {
	SlotID      uint    `json:"slot_id" binding:"required"`
	PlacementID *uint   `json:"placement_id"`
	CreativeID  *uint   `json:"creative_id"`
	UID         *string `json:"uid"`
	SID         *string `json:"sid"`
	VisMS       *int    `json:"vis_ms"`
}

// ClickRequest 点击上报
type ClickRequest struct {
	SlotID      uint    `json:"slot_id" binding:"required"`
	PlacementID *uint   `json:"placement_id"`
	CreativeID  *uint   `json:"creative_id"`
	UID         *string `json:"uid"`
	SID         *string `json:"sid"`
}

// BatchEventRequest 批量上报中的单个事件
type BatchEventRequest struct {
	Type        string          `json:"type" binding:"required,oneof=imp click"`
	SlotID      *uint           `json:"slot_id"`
	PlacementID *uint           `json:"placement_id"`
	CreativeID  *uint           `json:"creative_id"`
	TS          json.RawMessage `json:"ts"`
	UA          string          `json:"ua"`
	UID         *string         `json:"uid"`
	SID         *string         `json:"sid"`
	VisMS       *int            `json:"vis_ms"`
}

// BatchRequest 批量上报
type BatchRequest struct {
	Events []BatchEventRequest `json:"events" binding:"required,min=1,dive"`
}

type trackResponse struct {
	OK    bool `json:"ok"`
	Dedup bool `json:"dedup"`
}

type batchResponse struct {
	OK    bool `json:"ok"`
	Imp   int  `json:"imp"`
	Click int  `json:"click"`
}

// RecordImpression 记录曝光
func (h *Handler) RecordImpression(c *gin.Context) {
	var req ImpressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeUnprocessableEntity, "invalid impression payload", nil)
		return
	}
	result, err := h.AdMetricsService.RecordImpression(c.Request.Context(), service.ImpressionEvent{
		SlotID:      req.SlotID,
		PlacementID: req.PlacementID,
		CreativeID:  req.CreativeID,
		UID:         req.UID,
		SID:         req.SID,
		VisMS:       req.VisMS,
		UserAgent:   c.Request.UserAgent(),
		IP:          h.clientIP(c),
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, trackingErrorRules)
		return
	}
	response.JSON(c, trackResponse{OK: true, Dedup: result.Deduplicated})
}

// RecordClick 记录点击
func (h *Handler) RecordClick(c *gin.Context) {
	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeUnprocessableEntity, "invalid click payload", nil)
		return
	}
	result, err := h.AdMetricsService.RecordClick(c.Request.Context(), service.ClickEvent{
		SlotID:      req.SlotID,
		PlacementID: req.PlacementID,
		CreativeID:  req.CreativeID,
		UID:         req.UID,
		SID:         req.SID,
		UserAgent:   c.Request.UserAgent(),
		IP:          h.clientIP(c),
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, trackingErrorRules)
		return
	}
	response.JSON(c, trackResponse{OK: true, Dedup: result.Deduplicated})
}

// RecordBatch 批量记录曝光与点击
func (h *Handler) RecordBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeUnprocessableEntity, "invalid batch payload", nil)
		return
	}
	ip := h.clientIP(c)
	headerUA := c.Request.UserAgent()
	events := make([]service.BatchEvent, 0, len(req.Events))
	for idx, item := range req.Events {
		ts, err := parseEventTS(item.TS)
		if err != nil {
			respondError(c, response.CodeUnprocessableEntity, fmt.Sprintf("events[%d].ts: %v", idx, err), nil)
			return
		}
		ua := strings.TrimSpace(item.UA)
		if ua == "" {
			ua = headerUA
		}
		events = append(events, service.BatchEvent{
			Type:        item.Type,
			SlotID:      item.SlotID,
			PlacementID: item.PlacementID,
			CreativeID:  item.CreativeID,
			TS:          ts,
			UID:         item.UID,
			SID:         item.SID,
			VisMS:       item.VisMS,
			UserAgent:   ua,
			IP:          ip,
		})
	}
	result, err := h.AdMetricsService.RecordBatch(c.Request.Context(), events)
	if err != nil {
		handlershared.RespondMappedError(c, err, trackingErrorRules)
		return
	}
	response.JSON(c, batchResponse{OK: true, Imp: result.Impressions, Click: result.Clicks})
}

// parseEventTS 解析 RFC3339 文本或 unix 秒/毫秒，缺省返回 nil
func parseEventTS(raw json.RawMessage) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
		if parsed, err := time.Parse(time.RFC3339, text); err == nil {
			return &parsed, nil
		}
		return parseUnixTS(text)
	}
	return parseUnixTS(string(raw))
}

func parseUnixTS(text string) (*time.Time, error) {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value < 0 {
		return nil, fmt.Errorf("unsupported timestamp %q", text)
	}
	var ts time.Time
	if value > unixMillisThreshold {
		ts = time.UnixMilli(int64(value))
	} else {
		ts = time.Unix(int64(value), 0)
	}
	ts = ts.UTC()
	return &ts, nil
}
