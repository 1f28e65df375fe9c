package shared

import (
	"errors"

	"github.com/newsportal/internal/http/response"
	"github.com/newsportal/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal error"

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(logger.FieldRequestID); ok {
		if id, ok := requestID.(string); ok {
			return logger.WithRequestID(id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
// 5xx 响应只返回通用消息，原始错误仅写入日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"status", appErr.Status,
			"message", appErr.Message,
			"path", c.FullPath(),
			"error", err,
		)
	}
	response.Error(c, appErr.Status, appErr.PublicMessage())
}

// MappedError 业务错误到接口错误响应的映射关系。
// Message 为空时使用错误本身的文本。
type MappedError struct {
	Target  error
	Code    int
	Message string
}

// RespondMappedError 按映射规则输出错误，未命中时按 500 处理
func RespondMappedError(c *gin.Context, err error, rules []MappedError) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			msg := rule.Message
			if msg == "" {
				msg = err.Error()
			}
			RespondError(c, rule.Code, msg, nil)
			return
		}
	}
	RespondError(c, response.CodeInternal, internalErrorMessage, err)
}
