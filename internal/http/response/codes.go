package response

import "net/http"

// 接口使用真实 HTTP 状态码
const (
	CodeOK                  = http.StatusOK
	CodeBadRequest          = http.StatusBadRequest
	CodeUnauthorized        = http.StatusUnauthorized
	CodeForbidden           = http.StatusForbidden
	CodeNotFound            = http.StatusNotFound
	CodeConflict            = http.StatusConflict
	CodeUnprocessableEntity = http.StatusUnprocessableEntity
	CodeTooManyRequests     = http.StatusTooManyRequests
	CodeInternal            = http.StatusInternalServerError
	CodeServiceUnavailable  = http.StatusServiceUnavailable
)
