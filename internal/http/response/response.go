package response

import (
	"net/http"

	"github.com/newsportal/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// DataResponse 后台单条数据响应
type DataResponse struct {
	Data interface{} `json:"data"`
}

// PageResponse 后台分页响应
type PageResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// BuildPagination 计算分页信息
func BuildPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPage: totalPage}
}

// JSON 原样输出公开接口的响应体
func JSON(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, DataResponse{Data: data})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{Data: data, Pagination: pagination})
}

// NoContent 删除成功响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorBody{Error: msg, RequestID: requestID(c)})
}

// Abort 输出错误并中止后续处理
func Abort(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: msg, RequestID: requestID(c)})
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(logger.FieldRequestID); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
