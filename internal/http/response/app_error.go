package response

import "fmt"

const internalErrorMessage = "internal error"

// AppError 带 HTTP 状态的接口错误
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Internal 是否为服务端错误
func (e *AppError) Internal() bool {
	return e.Status >= CodeInternal
}

// PublicMessage 对外展示的消息，服务端错误不暴露细节
func (e *AppError) PublicMessage() string {
	if e.Internal() {
		return internalErrorMessage
	}
	return e.Message
}

// WrapError 包装错误
func WrapError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}
