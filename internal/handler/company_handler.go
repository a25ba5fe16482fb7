package handler

import (
	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/service"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// CompanyHandler 公司处理器
type CompanyHandler struct {
	companyService     *service.CompanyService
	applicationService *service.ApplicationService
	contactService     *service.ContactService
}

// NewCompanyHandler 创建公司处理器
func NewCompanyHandler(
	companyService *service.CompanyService,
	applicationService *service.ApplicationService,
	contactService *service.ContactService,
) *CompanyHandler {
	return &CompanyHandler{
		companyService:     companyService,
		applicationService: applicationService,
		contactService:     contactService,
	}
}

// Create 创建公司
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "company created", company)
}

// List 获取公司列表
func (h *CompanyHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	companies, err := h.companyService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, companies)
}

// Get 获取公司详情
func (h *CompanyHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.Get(c.Request.Context(), userID, companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, company)
}

// Update 更新公司
func (h *CompanyHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), userID, companyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "company updated", company)
}

// Delete 删除公司
func (h *CompanyHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), userID, companyID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "company deleted", nil)
}

// ListApplications 获取公司下的申请
func (h *CompanyHandler) ListApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	apps, err := h.applicationService.ListByCompany(c.Request.Context(), userID, companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, apps)
}

// ListContacts 获取公司下的联系人
func (h *CompanyHandler) ListContacts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	contacts, err := h.contactService.ListByCompany(c.Request.Context(), userID, companyID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, contacts)
}
