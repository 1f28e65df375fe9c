package shared

import (
	"strconv"
	"strings"

	"github.com/newsportal/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 中间件写入上下文的键
const (
	ContextUserID    = "user_id"
	ContextUserLogin = "user_login"
	ContextRoles     = "user_roles"
)

// GetContextUint 从上下文读取 uint 值并统一处理错误响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, key+" is invalid", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, key+" is invalid", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, key+" has unexpected type", nil)
		return 0, false
	}
}

// ParseIDParam 解析路径中的数字 ID
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, name+" is invalid", nil)
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalBool 解析可选的布尔查询参数，空值返回 nil
func ParseOptionalBool(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// FirstQuery 依次读取多个查询参数名，返回第一个非空值
func FirstQuery(c *gin.Context, names ...string) string {
	for _, name := range names {
		if value := strings.TrimSpace(c.Query(name)); value != "" {
			return value
		}
	}
	return ""
}

// ParseOptionalUint 解析可选的数字查询参数，空值返回 0
func ParseOptionalUint(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePagination 页码从 1 开始，每页默认 20 条，最多 100 条
func NormalizePagination(page, pageSize int) (int, int) {
	page = max(page, 1)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return page, min(pageSize, maxPageSize)
}
