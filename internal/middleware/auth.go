package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	contextUserID      = "user_id"
	contextCurrentUser = "current_user"
)

// UserLookup 按ID加载用户
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware JWT认证中间件
// Token通过校验后再从数据库加载用户，已删除或已禁用的账户不能继续使用旧Token
func AuthMiddleware(jwtManager *utils.JWTManager, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 解析Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			utils.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.Unauthorized(c, "user no longer exists")
			} else {
				_ = c.Error(err)
				utils.InternalError(c, "internal server error")
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			utils.Forbidden(c, "account is disabled")
			c.Abort()
			return
		}

		c.Set(contextUserID, user.ID)
		c.Set(contextCurrentUser, user)

		c.Next()
	}
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(contextUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok && id != 0
}

// CurrentUser 从上下文获取 AuthMiddleware 加载的用户
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
