package handler

import (
	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/service"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler 职位申请处理器
type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

// NewApplicationHandler 创建申请处理器
func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Create 创建申请
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.applicationService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "application created", app)
}

// Get 获取申请详情
func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id")
	if !ok {
		return
	}

	app, err := h.applicationService.Get(c.Request.Context(), userID, appID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, app)
}

// Update 更新申请
func (h *ApplicationHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.applicationService.Update(c.Request.Context(), userID, appID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "application updated", app)
}

// Delete 删除申请
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.applicationService.Delete(c.Request.Context(), userID, appID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "application deleted", nil)
}
