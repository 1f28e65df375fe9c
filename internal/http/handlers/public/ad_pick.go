package public

import (
	"errors"

	"github.com/newsportal/internal/constants"
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

type slotKeyQuery struct {
	SlotKey string `form:"slotKey" binding:"required,slotkey"`
}

type pickSlotView struct {
	ID  uint   `json:"id"`
	Key string `json:"key"`
}

type pickPlacementView struct {
	ID     uint `json:"id"`
	Weight int  `json:"weight"`
}

type pickCreativeView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	HTML        *string `json:"html"`
	ImageURL    *string `json:"image_url"`
	ClickURL    *string `json:"click_url"`
	TargetBlank bool    `json:"target_blank"`
}

// PickResponse /pick 的嵌套结构
type PickResponse struct {
	Slot      pickSlotView      `json:"slot"`
	Placement pickPlacementView `json:"placement"`
	Creative  pickCreativeView  `json:"creative"`
}

// ActivePlacementRow /placements/active 的扁平结构
type ActivePlacementRow struct {
	PlacementID uint    `json:"placement_id"`
	SlotID      uint    `json:"slot_id"`
	SlotKey     string  `json:"slot_key"`
	Weight      int     `json:"weight"`
	CreativeID  uint    `json:"creative_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	HTML        *string `json:"html"`
	ImageURL    *string `json:"image_url"`
	ClickURL    *string `json:"click_url"`
	TargetBlank bool    `json:"target_blank"`
}

// ActivePlacementResponse 选取结果，未命中时 row 为 null
type ActivePlacementResponse struct {
	Row    *ActivePlacementRow `json:"row"`
	Reason string              `json:"reason,omitempty"`
}

func buildPickResponse(selection *service.AdSelection) PickResponse {
	row := selection.Placement
	return PickResponse{
		Slot:      pickSlotView{ID: selection.Slot.ID, Key: selection.Slot.SlotKey},
		Placement: pickPlacementView{ID: row.PlacementID, Weight: row.PlacementWeight},
		Creative: pickCreativeView{
			ID:          row.CreativeID,
			Name:        row.CreativeName,
			Type:        row.CreativeType,
			HTML:        row.HTML,
			ImageURL:    row.ImageURL,
			ClickURL:    row.ClickURL,
			TargetBlank: row.TargetBlank,
		},
	}
}

func buildActivePlacementRow(selection *service.AdSelection) *ActivePlacementRow {
	row := selection.Placement
	return &ActivePlacementRow{
		PlacementID: row.PlacementID,
		SlotID:      selection.Slot.ID,
		SlotKey:     selection.Slot.SlotKey,
		Weight:      row.PlacementWeight,
		CreativeID:  row.CreativeID,
		Name:        row.CreativeName,
		Type:        row.CreativeType,
		HTML:        row.HTML,
		ImageURL:    row.ImageURL,
		ClickURL:    row.ClickURL,
		TargetBlank: row.TargetBlank,
	}
}

// PickAd 为广告位选取一个投放
func (h *Handler) PickAd(c *gin.Context) {
	var query slotKeyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "slotKey is missing or invalid", nil)
		return
	}
	selection, err := h.AdSelectionService.PickForSlot(c.Request.Context(), query.SlotKey)
	if err != nil {
		handlershared.RespondMappedError(c, err, pickErrorRules)
		return
	}
	response.JSON(c, buildPickResponse(selection))
}

// GetActivePlacement 选取结果的扁平形式，未命中同样返回 200
func (h *Handler) GetActivePlacement(c *gin.Context) {
	var query slotKeyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.JSON(c, ActivePlacementResponse{Reason: constants.AdNoActiveReason})
		return
	}
	selection, err := h.AdSelectionService.PickForSlot(c.Request.Context(), query.SlotKey)
	if err != nil {
		if errors.Is(err, service.ErrSlotNotFound) || errors.Is(err, service.ErrNoEligibleCreative) {
			response.JSON(c, ActivePlacementResponse{Reason: constants.AdNoActiveReason})
			return
		}
		respondError(c, response.CodeInternal, "pick failed", err)
		return
	}
	response.JSON(c, ActivePlacementResponse{Row: buildActivePlacementRow(selection)})
}
