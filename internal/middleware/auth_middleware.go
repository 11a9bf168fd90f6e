package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shorturl-go/internal/auth"
	i18npkg "shorturl-go/internal/i18n"
	"shorturl-go/response"
)

// Context keys the auth middleware populates for downstream handlers.
const (
	ContextUserIDKey = "userId"
	ContextClaimsKey = "claims"
)

// AuthMiddleware 校验 Bearer 令牌，并把解析出的用户信息写入 Context。
// 校验走到 handler 之前，失败直接 401。
func AuthMiddleware(tokens *auth.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "error.token_required")
			return
		}

		// 令牌格式是 "Bearer <token>"，解析出 <token> 部分
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		claims, err := tokens.VerifyToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, messageID string) {
	msg := i18npkg.Localize(c.Request.Context(), messageID)
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(msg))
}
