package admin

import (
	"strconv"

	handlershared "github.com/newsportal/internal/http/handlers/shared"
	"github.com/newsportal/internal/http/response"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, handlershared.ContextUserID)
}

// pageParams 读取分页参数
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return handlershared.NormalizePagination(page, pageSize)
}

// optionalBoolQuery 读取可选布尔参数，格式错误时直接响应 400
func optionalBoolQuery(c *gin.Context, name string) (*bool, bool) {
	value, err := handlershared.ParseOptionalBool(c.Query(name))
	if err != nil {
		respondError(c, response.CodeBadRequest, name+" must be a boolean", nil)
		return nil, false
	}
	return value, true
}

// optionalUintQuery 读取可选 ID 参数，支持多个别名
func optionalUintQuery(c *gin.Context, names ...string) (uint, bool) {
	value, err := handlershared.ParseOptionalUint(handlershared.FirstQuery(c, names...))
	if err != nil {
		respondError(c, response.CodeBadRequest, names[0]+" is invalid", nil)
		return 0, false
	}
	return value, true
}
