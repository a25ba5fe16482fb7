package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Mallesh-145/job-application-tracker/internal/service"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// ResumeHandler 简历处理器
type ResumeHandler struct {
	resumeService *service.ResumeService
	maxBytes      int64
}

// NewResumeHandler 创建简历处理器
func NewResumeHandler(resumeService *service.ResumeService, maxBytes int64) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
		maxBytes:      maxBytes,
	}
}

// Upload 上传简历（multipart 字段 file）
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "no file part")
		return
	}
	if file.Filename == "" {
		utils.BadRequest(c, "no selected file")
		return
	}
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		utils.BadRequest(c, fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes))
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.BadRequest(c, "cannot open uploaded file")
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		utils.BadRequest(c, "cannot read uploaded file")
		return
	}

	resume, err := h.resumeService.Upload(c.Request.Context(), userID, appID, file.Filename, content)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "file uploaded", resume)
}

// List 获取申请下的简历列表
func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resumes, err := h.resumeService.List(c.Request.Context(), userID, appID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, resumes)
}

// Download 下载简历
func (h *ResumeHandler) Download(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resumeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, err := h.resumeService.Download(c.Request.Context(), userID, resumeID)
	if err != nil {
		respondError(c, err)
		return
	}

	// 同时提供 ASCII 回退和 RFC 5987 的 UTF-8 文件名
	encodedFilename := url.PathEscape(file.Filename)
	c.Header("Content-Disposition", "inline; filename=\""+file.Filename+"\"; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Delete 删除简历
func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resumeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.resumeService.Delete(c.Request.Context(), userID, resumeID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "resume deleted", nil)
}
