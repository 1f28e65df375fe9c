package admin

import (
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

// AdCreativeRequest 素材创建/更新请求
// 时间字段传 null 表示清空，不传表示保持不变。
type AdCreativeRequest struct {
	Name        *string                    `json:"name"`
	Type        *string                    `json:"type"`
	HTML        *string                    `json:"html"`
	ImageURL    *string                    `json:"image_url"`
	ClickURL    *string                    `json:"click_url"`
	TargetBlank *bool                      `json:"target_blank"`
	Weight      *int                       `json:"weight"`
	ActiveFrom  handlershared.NullableTime `json:"active_from"`
	ActiveTo    handlershared.NullableTime `json:"active_to"`
	IsActive    *bool                      `json:"is_active"`
}

func (r AdCreativeRequest) toInput() service.AdCreativeInput {
	return service.AdCreativeInput{
		Name:        r.Name,
		Type:        r.Type,
		HTML:        r.HTML,
		ImageURL:    r.ImageURL,
		ClickURL:    r.ClickURL,
		TargetBlank: r.TargetBlank,
		Weight:      r.Weight,
		ActiveFrom:  r.ActiveFrom.ToPatch(),
		ActiveTo:    r.ActiveTo.ToPatch(),
		IsActive:    r.IsActive,
	}
}

// ListAdCreatives 素材列表
func (h *Handler) ListAdCreatives(c *gin.Context) {
	page, pageSize := pageParams(c)
	isActive, ok := optionalBoolQuery(c, "is_active")
	if !ok {
		return
	}
	creatives, total, err := h.AdCreativeService.List(c.Request.Context(), c.Query("type"), c.Query("search"), isActive, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "list creatives failed", err)
		return
	}
	response.SuccessWithPage(c, creatives, response.BuildPagination(page, pageSize, total))
}

// GetAdCreative 素材详情
func (h *Handler) GetAdCreative(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	creative, err := h.AdCreativeService.GetByID(c.Request.Context(), id)
	if err != nil {
		handlershared.RespondMappedError(c, err, adCreativeErrorRules)
		return
	}
	response.Success(c, creative)
}

// CreateAdCreative 创建素材
func (h *Handler) CreateAdCreative(c *gin.Context) {
	var req AdCreativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid creative payload", nil)
		return
	}
	creative, err := h.AdCreativeService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		handlershared.RespondMappedError(c, err, adCreativeErrorRules)
		return
	}
	response.Created(c, creative)
}

// UpdateAdCreative 部分更新素材
func (h *Handler) UpdateAdCreative(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req AdCreativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid creative payload", nil)
		return
	}
	creative, err := h.AdCreativeService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		handlershared.RespondMappedError(c, err, adCreativeErrorRules)
		return
	}
	response.Success(c, creative)
}

// DeleteAdCreative 删除素材
func (h *Handler) DeleteAdCreative(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AdCreativeService.Delete(c.Request.Context(), id); err != nil {
		handlershared.RespondMappedError(c, err, adCreativeErrorRules)
		return
	}
	response.NoContent(c)
}
