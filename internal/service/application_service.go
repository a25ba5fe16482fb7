package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
)

var applicationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ApplicationService 职位申请服务
type ApplicationService struct {
	appRepo *repository.ApplicationRepository
	audit   *AuditService
	now     func() time.Time
}

// NewApplicationService 创建申请服务
func NewApplicationService(appRepo *repository.ApplicationRepository, audit *AuditService) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		audit:   audit,
		now:     time.Now,
	}
}

// Create 创建申请
// status 为 Applied 且未提供 application_date 时自动填入当前时间
func (s *ApplicationService) Create(ctx context.Context, userID uint, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	title := strings.TrimSpace(req.JobTitle)
	if title == "" {
		return nil, validationError("job_title is required")
	}

	status := models.StatusToApply
	if req.Status != nil {
		status = *req.Status
	}
	if !models.IsValidStatus(status) {
		return nil, validationError("unknown status %q", status)
	}

	app := &models.JobApplication{
		JobTitle:  title,
		Status:    status,
		Notes:     req.Notes,
		JobURL:    req.JobURL,
		CompanyID: req.CompanyID,
	}

	if req.ApplicationDate != nil {
		date, err := parseApplicationDate(*req.ApplicationDate)
		if err != nil {
			return nil, err
		}
		app.ApplicationDate = date
	}
	if app.ApplicationDate == nil && status == models.StatusApplied {
		now := s.now()
		app.ApplicationDate = &now
	}

	if err := s.appRepo.Create(ctx, userID, app); err != nil {
		return nil, mapRepoError(err, "company")
	}

	s.audit.Record(ctx, userID, models.ActionCreateApplication,
		fmt.Sprintf("Created application %q (id=%d) for company id=%d", app.JobTitle, app.ID, app.CompanyID))

	resp := toApplicationResponse(app)
	return &resp, nil
}

// ListByCompany 获取公司下的申请
func (s *ApplicationService) ListByCompany(ctx context.Context, userID, companyID uint) ([]dto.ApplicationResponse, error) {
	apps, err := s.appRepo.ListByCompany(ctx, companyID, userID)
	if err != nil {
		return nil, mapRepoError(err, "company")
	}

	resp := make([]dto.ApplicationResponse, len(apps))
	for i := range apps {
		resp[i] = toApplicationResponse(&apps[i])
	}
	return resp, nil
}

// Get 获取申请
func (s *ApplicationService) Get(ctx context.Context, userID, appID uint) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.GetByIDAndUserID(ctx, appID, userID)
	if err != nil {
		return nil, mapRepoError(err, "application")
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

// Update 部分更新申请
// 显式提供的 application_date 优先；否则仅当状态变为 Applied（或原本没有日期）时填入当前时间
func (s *ApplicationService) Update(ctx context.Context, userID, appID uint, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	var explicitDate *time.Time
	if req.ApplicationDate != nil {
		date, err := parseApplicationDate(*req.ApplicationDate)
		if err != nil {
			return nil, err
		}
		explicitDate = date
	}

	app, err := s.appRepo.Update(ctx, appID, userID, func(a *models.JobApplication) error {
		previousStatus := a.Status

		if req.JobTitle != nil {
			title := strings.TrimSpace(*req.JobTitle)
			if title == "" {
				return validationError("job_title must not be empty")
			}
			a.JobTitle = title
		}
		if req.Status != nil {
			if !models.IsValidStatus(*req.Status) {
				return validationError("unknown status %q", *req.Status)
			}
			a.Status = *req.Status
		}
		if req.Notes != nil {
			a.Notes = req.Notes
		}
		if req.JobURL != nil {
			a.JobURL = req.JobURL
		}

		switch {
		case req.ApplicationDate != nil:
			a.ApplicationDate = explicitDate
		case req.Status != nil && *req.Status == models.StatusApplied &&
			(previousStatus != models.StatusApplied || a.ApplicationDate == nil):
			now := s.now()
			a.ApplicationDate = &now
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err, "application")
	}

	s.audit.Record(ctx, userID, models.ActionUpdateApplication,
		fmt.Sprintf("Updated application %q (id=%d), status=%s", app.JobTitle, app.ID, app.Status))

	resp := toApplicationResponse(app)
	return &resp, nil
}

// Delete 删除申请及其简历
func (s *ApplicationService) Delete(ctx context.Context, userID, appID uint) error {
	if err := s.appRepo.Delete(ctx, appID, userID); err != nil {
		return mapRepoError(err, "application")
	}

	s.audit.Record(ctx, userID, models.ActionDeleteApplication, fmt.Sprintf("Deleted application id=%d", appID))
	return nil
}

// parseApplicationDate 空字符串表示清除日期
func parseApplicationDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range applicationDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, validationError("application_date %q is not a valid date", value)
}

func toApplicationResponse(a *models.JobApplication) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:              a.ID,
		JobTitle:        a.JobTitle,
		Status:          a.Status,
		ApplicationDate: a.ApplicationDate,
		Notes:           a.Notes,
		JobURL:          a.JobURL,
		CompanyID:       a.CompanyID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
