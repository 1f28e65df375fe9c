package public

import (
	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
)

// PostViewRequest 阅读上报，body 可为空
type PostViewRequest struct {
	UID *string `json:"uid"`
	SID *string `json:"sid"`
}

type postViewResponse struct {
	OK    bool  `json:"ok"`
	Dedup bool  `json:"dedup"`
	Views int64 `json:"views"`
}

type postViewsResponse struct {
	PostID uint  `json:"post_id"`
	Views  int64 `json:"views"`
}

// RecordPostView 记录文章阅读
func (h *Handler) RecordPostView(c *gin.Context) {
	postID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req PostViewRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeUnprocessableEntity, "invalid view payload", nil)
			return
		}
	}
	result, err := h.PostViewService.RecordView(c.Request.Context(), service.PostViewInput{
		PostID:    postID,
		UID:       req.UID,
		SID:       req.SID,
		UserAgent: c.Request.UserAgent(),
		IP:        h.clientIP(c),
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, postViewErrorRules)
		return
	}
	response.JSON(c, postViewResponse{OK: true, Dedup: result.Deduplicated, Views: result.Views})
}

// GetPostViews 文章累计阅读数
func (h *Handler) GetPostViews(c *gin.Context) {
	postID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	views, err := h.PostViewService.Views(c.Request.Context(), postID)
	if err != nil {
		handlershared.RespondMappedError(c, err, postViewErrorRules)
		return
	}
	response.JSON(c, postViewsResponse{PostID: postID, Views: views})
}
