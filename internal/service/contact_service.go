package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
)

// ContactService 联系人服务
type ContactService struct {
	contactRepo *repository.ContactRepository
	audit       *AuditService
}

// NewContactService 创建联系人服务
func NewContactService(contactRepo *repository.ContactRepository, audit *AuditService) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		audit:       audit,
	}
}

// Create 创建联系人
func (s *ContactService) Create(ctx context.Context, userID uint, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("contact name is required")
	}

	contact := &models.Contact{
		Name:      name,
		Email:     req.Email,
		Phone:     req.Phone,
		CompanyID: req.CompanyID,
	}
	if err := s.contactRepo.Create(ctx, userID, contact); err != nil {
		return nil, mapRepoError(err, "company")
	}

	s.audit.Record(ctx, userID, models.ActionCreateContact,
		fmt.Sprintf("Created contact %q (id=%d) for company id=%d", contact.Name, contact.ID, contact.CompanyID))

	resp := toContactResponse(contact)
	return &resp, nil
}

// ListByCompany 获取公司下的联系人
func (s *ContactService) ListByCompany(ctx context.Context, userID, companyID uint) ([]dto.ContactResponse, error) {
	contacts, err := s.contactRepo.ListByCompany(ctx, companyID, userID)
	if err != nil {
		return nil, mapRepoError(err, "company")
	}

	resp := make([]dto.ContactResponse, len(contacts))
	for i := range contacts {
		resp[i] = toContactResponse(&contacts[i])
	}
	return resp, nil
}

// Get 获取联系人
func (s *ContactService) Get(ctx context.Context, userID, contactID uint) (*dto.ContactResponse, error) {
	contact, err := s.contactRepo.GetByIDAndUserID(ctx, contactID, userID)
	if err != nil {
		return nil, mapRepoError(err, "contact")
	}
	resp := toContactResponse(contact)
	return &resp, nil
}

// Update 部分更新联系人
func (s *ContactService) Update(ctx context.Context, userID, contactID uint, req *dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	contact, err := s.contactRepo.Update(ctx, contactID, userID, func(c *models.Contact) error {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return validationError("contact name must not be empty")
			}
			c.Name = name
		}
		if req.Email != nil {
			c.Email = req.Email
		}
		if req.Phone != nil {
			c.Phone = req.Phone
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err, "contact")
	}

	s.audit.Record(ctx, userID, models.ActionUpdateContact, fmt.Sprintf("Updated contact %q (id=%d)", contact.Name, contact.ID))

	resp := toContactResponse(contact)
	return &resp, nil
}

// Delete 删除联系人
func (s *ContactService) Delete(ctx context.Context, userID, contactID uint) error {
	if err := s.contactRepo.Delete(ctx, contactID, userID); err != nil {
		return mapRepoError(err, "contact")
	}

	s.audit.Record(ctx, userID, models.ActionDeleteContact, fmt.Sprintf("Deleted contact id=%d", contactID))
	return nil
}

func toContactResponse(c *models.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CompanyID: c.CompanyID,
	}
}
