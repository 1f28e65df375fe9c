package admin

import (
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

// AdSlotRequest 广告位创建/更新请求
type AdSlotRequest struct {
	SlotKey *string `json:"slot_key"`
	Name    *string `json:"name"`
	Enabled *bool   `json:"enabled"`
	MaxAds  *int    `json:"max_ads"`
}

func (r AdSlotRequest) toInput() service.AdSlotInput {
	return service.AdSlotInput{SlotKey: r.SlotKey, Name: r.Name, Enabled: r.Enabled, MaxAds: r.MaxAds}
}

// ListAdSlots 广告位列表
func (h *Handler) ListAdSlots(c *gin.Context) {
	page, pageSize := pageParams(c)
	enabled, ok := optionalBoolQuery(c, "enabled")
	if !ok {
		return
	}
	slots, total, err := h.AdSlotService.List(c.Request.Context(), c.Query("search"), enabled, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list slots failed", err)
		return
	}
	response.SuccessWithPage(c, slots, response.BuildPagination(page, pageSize, total))
}

// GetAdSlot 广告位详情
func (h *Handler) GetAdSlot(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	slot, err := h.AdSlotService.GetByID(c.Request.Context(), id)
	if err != nil {
		handlershared.RespondMappedError(c, err, adSlotErrorRules)
		return
	}
	response.Success(c, slot)
}

// CreateAdSlot 创建广告位
func (h *Handler) CreateAdSlot(c *gin.Context) {
	var req AdSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid slot payload", nil)
		return
	}
	slot, err := h.AdSlotService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		handlershared.RespondMappedError(c, err, adSlotErrorRules)
		return
	}
	response.Created(c, slot)
}

// UpdateAdSlot 部分更新广告位
func (h *Handler) UpdateAdSlot(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req AdSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid slot payload", nil)
		return
	}
	slot, err := h.AdSlotService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		handlershared.RespondMappedError(c, err, adSlotErrorRules)
		return
	}
	response.Success(c, slot)
}

// DeleteAdSlot 删除广告位及其投放
func (h *Handler) DeleteAdSlot(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AdSlotService.Delete(c.Request.Context(), id); err != nil {
		handlershared.RespondMappedError(c, err, adSlotErrorRules)
		return
	}
	response.NoContent(c)
}
