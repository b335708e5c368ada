package middleware

import (
	"Murmur/internal/api/config"
	"Murmur/internal/pkg/response"
	"Murmur/internal/pkg/security"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 负责验证管理会话令牌
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ValidateAdminToken(config.Cfg.Admin.JWTSecret, tokenString)
		if err != nil || claims.Role != "ADMIN" {
			response.Fail(c, http.StatusUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Next()
	}
}
