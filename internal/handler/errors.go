package handler

import (
	"errors"
	"strconv"

	"github.com/Mallesh-145/job-application-tracker/internal/middleware"
	"github.com/Mallesh-145/job-application-tracker/internal/service"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层错误映射为HTTP响应，内部错误不向客户端暴露细节
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.Unauthorized(c, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrUnauthorized):
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrAccountDisabled):
		utils.Forbidden(c, service.ErrAccountDisabled.Error())
	case errors.Is(err, service.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, service.ErrTooManyAttempts):
		utils.TooManyRequests(c, service.ErrTooManyAttempts.Error())
	default:
		_ = c.Error(err)
		utils.InternalError(c, service.ErrInternal.Error())
	}
}

// bindError 请求体解析或校验失败
func bindError(c *gin.Context, err error) {
	utils.BadRequest(c, utils.FormatValidationError(err).Error())
}

// pathID 解析路径中的ID参数
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// currentUserID 读取认证中间件写入的用户ID
func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Unauthorized(c, "not authenticated")
	}
	return userID, ok
}
