package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
)

// CompanyService 公司服务
type CompanyService struct {
	companyRepo *repository.CompanyRepository
	audit       *AuditService
}

// NewCompanyService 创建公司服务
func NewCompanyService(companyRepo *repository.CompanyRepository, audit *AuditService) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		audit:       audit,
	}
}

// Create 创建公司
func (s *CompanyService) Create(ctx context.Context, userID uint, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("company name is required")
	}

	company := &models.Company{
		Name:       name,
		Address:    req.Address,
		WebsiteURL: req.WebsiteURL,
		UserID:     userID,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, mapRepoError(err, "company")
	}

	s.audit.Record(ctx, userID, models.ActionCreateCompany, fmt.Sprintf("Created company %q (id=%d)", company.Name, company.ID))

	resp := toCompanyResponse(company)
	return &resp, nil
}

// List 获取当前用户的公司
func (s *CompanyService) List(ctx context.Context, userID uint) ([]dto.CompanyResponse, error) {
	companies, err := s.companyRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "companies")
	}

	resp := make([]dto.CompanyResponse, len(companies))
	for i := range companies {
		resp[i] = toCompanyResponse(&companies[i])
	}
	return resp, nil
}

// Get 获取公司
func (s *CompanyService) Get(ctx context.Context, userID, companyID uint) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.GetByIDAndUserID(ctx, companyID, userID)
	if err != nil {
		return nil, mapRepoError(err, "company")
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

// Update 部分更新公司
func (s *CompanyService) Update(ctx context.Context, userID, companyID uint, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.Update(ctx, companyID, userID, func(c *models.Company) error {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return validationError("company name must not be empty")
			}
			c.Name = name
		}
		if req.Address != nil {
			c.Address = req.Address
		}
		if req.WebsiteURL != nil {
			c.WebsiteURL = req.WebsiteURL
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err, "company")
	}

	s.audit.Record(ctx, userID, models.ActionUpdateCompany, fmt.Sprintf("Updated company %q (id=%d)", company.Name, company.ID))

	resp := toCompanyResponse(company)
	return &resp, nil
}

// Delete 删除公司及其下全部数据
func (s *CompanyService) Delete(ctx context.Context, userID, companyID uint) error {
	if err := s.companyRepo.Delete(ctx, companyID, userID); err != nil {
		return mapRepoError(err, "company")
	}

	s.audit.Record(ctx, userID, models.ActionDeleteCompany, fmt.Sprintf("Deleted company id=%d", companyID))
	return nil
}

func toCompanyResponse(c *models.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:         c.ID,
		Name:       c.Name,
		Address:    c.Address,
		WebsiteURL: c.WebsiteURL,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
