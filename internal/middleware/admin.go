package middleware

import (
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware 管理员权限中间件
// 必须在 AuthMiddleware 之后使用；角色取自本次请求从数据库加载的用户，不信任Token里的声明
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}

		if !user.IsAdmin || !user.IsActive {
			utils.Forbidden(c, "admin privileges required")
			c.Abort()
			return
		}

		c.Next()
	}
}
