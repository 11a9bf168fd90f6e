package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shorturl-go/internal/apperrors"
	i18npkg "shorturl-go/internal/i18n"
	"shorturl-go/response"
)

// GlobalErrorMiddleware 全局错误中间件。Handler 通过 c.Error 挂上
// *apperrors.AppError，这里统一翻译 message id 并映射状态码。
func GlobalErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 如果有错误发生
		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				var appErr *apperrors.AppError
				if errors.As(err.Err, &appErr) {
					msg := i18npkg.Localize(c.Request.Context(), appErr.Message)
					c.AbortWithStatusJSON(appErr.Code, response.Error(msg))
					return
				}
			}

			// 默认处理未定义的错误
			msg := i18npkg.Localize(c.Request.Context(), "error.system_error")
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(msg))
			return
		}
	}
}
