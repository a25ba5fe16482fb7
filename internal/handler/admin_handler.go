package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/service"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员处理器
type AdminHandler struct {
	adminService *service.AdminService
	auditService *service.AuditService
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(adminService *service.AdminService, auditService *service.AuditService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		auditService: auditService,
	}
}

// ListUsers 获取所有用户
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.adminService.ListUsers(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, result.Items, result.Total, result.Page, result.PerPage)
}

// UpdateUserStatus 启用或禁用用户
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	user, err := h.adminService.UpdateUserStatus(c.Request.Context(), actorID, targetID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "user status updated", user)
}

// DeleteUser 删除用户
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), actorID, targetID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "user deleted", nil)
}

// ListLogs 获取审计日志
func (h *AdminHandler) ListLogs(c *gin.Context) {
	logs, err := h.auditService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, logs)
}

// ExportLogs 导出审计日志CSV
func (h *AdminHandler) ExportLogs(c *gin.Context) {
	data, err := h.auditService.ExportCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("audit_logs_%s.csv", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
