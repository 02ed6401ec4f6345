package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sasamaylina/responsi-paw/internal/auth"
	"github.com/sasamaylina/responsi-paw/internal/model"
)

const (
	ContextUserId = "user_id"
	ContextRole   = "role"
)

// RequireAuth 校验Bearer token，把用户ID和角色写入请求上下文
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "请先登录"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "登录凭证格式不正确"})
			c.Abort()
			return
		}

		userId, role, err := auth.ParseToken(secret, parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "登录凭证无效或已过期"})
			c.Abort()
			return
		}

		c.Set(ContextUserId, userId)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireAdmin 仅允许管理员访问，必须在RequireAuth之后使用
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role.(model.Role) != model.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "仅管理员可访问"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserId 从请求上下文取当前用户ID
func CurrentUserId(c *gin.Context) int64 {
	if v, exists := c.Get(ContextUserId); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
