package response

import (
	"time"

	"shorturl-go/internal/apperrors"
)

// Response 是一个通用的 API 错误响应结构
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// Error 构造一个失败的响应
func Error(message string) *Response {
	return &Response{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ErrorFromAppError 基于 AppError 构造错误响应
func ErrorFromAppError(err *apperrors.AppError) *Response {
	return Error(err.Message)
}
