package admin

import (
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

// AdPlacementRequest 投放创建/更新请求
type AdPlacementRequest struct {
	SlotID     *uint                      `json:"slot_id"`
	CreativeID *uint                      `json:"creative_id"`
	Weight     *int                       `json:"weight"`
	ActiveFrom handlershared.NullableTime `json:"active_from"`
	ActiveTo   handlershared.NullableTime `json:"active_to"`
	IsActive   *bool                      `json:"is_active"`
}

func (r AdPlacementRequest) toInput() service.AdPlacementInput {
	return service.AdPlacementInput{
		SlotID:     r.SlotID,
		CreativeID: r.CreativeID,
		Weight:     r.Weight,
		ActiveFrom: r.ActiveFrom.ToPatch(),
		ActiveTo:   r.ActiveTo.ToPatch(),
		IsActive:   r.IsActive,
	}
}

// ListAdPlacements 投放列表，可按广告位与素材过滤
func (h *Handler) ListAdPlacements(c *gin.Context) {
	page, pageSize := pageParams(c)
	slotID, ok := optionalUintQuery(c, "slot_id", "slotId")
	if !ok {
		return
	}
	creativeID, ok := optionalUintQuery(c, "creative_id", "creativeId")
	if !ok {
		return
	}
	isActive, ok := optionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	placements, total, err := h.AdPlacementService.List(c.Request.Context(), slotID, creativeID, isActive, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list placements failed", err)
		return
	}
	response.SuccessWithPage(c, placements, response.BuildPagination(page, pageSize, total))
}

// GetAdPlacement 投放详情
func (h *Handler) GetAdPlacement(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	placement, err := h.AdPlacementService.GetByID(c.Request.Context(), id)
	if err != nil {
		handlershared.RespondMappedError(c, err, adPlacementErrorRules)
		return
	}
	response.Success(c, placement)
}

// CreateAdPlacement 创建投放
func (h *Handler) CreateAdPlacement(c *gin.Context) {
	var req AdPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid placement payload", nil)
		return
	}
	placement, err := h.AdPlacementService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		handlershared.RespondMappedError(c, err, adPlacementErrorRules)
		return
	}
	response.Created(c, placement)
}

// UpdateAdPlacement 部分更新投放
func (h *Handler) UpdateAdPlacement(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req AdPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid placement payload", nil)
		return
	}
	placement, err := h.AdPlacementService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		handlershared.RespondMappedError(c, err, adPlacementErrorRules)
		return
	}
	response.Success(c, placement)
}

// DeleteAdPlacement 删除投放
func (h *Handler) DeleteAdPlacement(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AdPlacementService.Delete(c.Request.Context(), id); err != nil {
		handlershared.RespondMappedError(c, err, adPlacementErrorRules)
		return
	}
	response.NoContent(c)
}
