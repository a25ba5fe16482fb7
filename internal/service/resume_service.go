package service

import (
	"context"
	"fmt"

	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"
)

// ResumeService 简历服务
type ResumeService struct {
	resumeRepo *repository.ResumeRepository
	audit      *AuditService
}

// NewResumeService 创建简历服务
func NewResumeService(resumeRepo *repository.ResumeRepository, audit *AuditService) *ResumeService {
	return &ResumeService{
		resumeRepo: resumeRepo,
		audit:      audit,
	}
}

// Upload 上传简历，文件名改写为 {basename}_v{version}{ext}
func (s *ResumeService) Upload(ctx context.Context, userID, appID uint, filename string, content []byte) (*dto.ResumeResponse, error) {
	name := utils.SanitizeFilename(filename)
	if name == "" {
		return nil, validationError("filename is required")
	}
	if len(content) == 0 {
		return nil, validationError("file is empty")
	}

	resume, err := s.resumeRepo.CreateVersioned(ctx, appID, userID, func(version int) *models.Resume {
		versioned := utils.VersionedFilename(name, version)
		return &models.Resume{
			Filename:    versioned,
			Data:        content,
			FileSize:    len(content),
			ContentType: utils.ContentTypeFor(versioned),
		}
	})
	if err != nil {
		return nil, mapRepoError(err, "application")
	}

	s.audit.Record(ctx, userID, models.ActionUploadResume,
		fmt.Sprintf("Uploaded resume %s (id=%d) to application id=%d", resume.Filename, resume.ID, appID))

	resp := toResumeResponse(resume)
	return &resp, nil
}

// List 获取申请下的简历
func (s *ResumeService) List(ctx context.Context, userID, appID uint) ([]dto.ResumeResponse, error) {
	resumes, err := s.resumeRepo.ListByApplication(ctx, appID, userID)
	if err != nil {
		return nil, mapRepoError(err, "application")
	}

	resp := make([]dto.ResumeResponse, len(resumes))
	for i := range resumes {
		resp[i] = toResumeResponse(&resumes[i])
	}
	return resp, nil
}

// Download 下载简历，内容类型只按扩展名判断
func (s *ResumeService) Download(ctx context.Context, userID, resumeID uint) (*dto.ResumeFile, error) {
	resume, err := s.resumeRepo.GetByIDAndUserID(ctx, resumeID, userID)
	if err != nil {
		return nil, mapRepoError(err, "resume")
	}

	return &dto.ResumeFile{
		Filename:    resume.Filename,
		ContentType: utils.ContentTypeFor(resume.Filename),
		Data:        resume.Data,
	}, nil
}

// Delete 删除简历
func (s *ResumeService) Delete(ctx context.Context, userID, resumeID uint) error {
	resume, err := s.resumeRepo.Delete(ctx, resumeID, userID)
	if err != nil {
		return mapRepoError(err, "resume")
	}

	s.audit.Record(ctx, userID, models.ActionDeleteResume, fmt.Sprintf("Deleted resume %s (id=%d)", resume.Filename, resume.ID))
	return nil
}

func toResumeResponse(r *models.Resume) dto.ResumeResponse {
	return dto.ResumeResponse{
		ID:            r.ID,
		Filename:      r.Filename,
		Version:       r.Version,
		FileSize:      r.FileSize,
		ContentType:   r.ContentType,
		UploadDate:    r.UploadDate,
		ApplicationID: r.ApplicationID,
	}
}
