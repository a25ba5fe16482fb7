package handler

import (
	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/service"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactHandler 联系人处理器
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler 创建联系人处理器
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// Create 创建联系人
func (h *ContactHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "contact created", contact)
}

// Get 获取联系人
func (h *ContactHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}

	contact, err := h.contactService.Get(c.Request.Context(), userID, contactID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, contact)
}

// Update 更新联系人
func (h *ContactHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), userID, contactID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "contact updated", contact)
}

// Delete 删除联系人
func (h *ContactHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), userID, contactID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "contact deleted", nil)
}
