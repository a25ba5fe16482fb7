package repository

import (
	"context"

	"github.com/Mallesh-145/job-application-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContactRepository 联系人数据访问层
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系人Repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create 创建联系人，公司必须属于该用户
func (r *ContactRepository) Create(ctx context.Context, userID uint, contact *models.Contact) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedCompany(tx, contact.CompanyID, userID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(contact).Error
	})
}

// ListByCompany 获取公司下的联系人
func (r *ContactRepository) ListByCompany(ctx context.Context, companyID, userID uint) ([]models.Contact, error) {
	db := r.db.WithContext(ctx)
	if _, err := findOwnedCompany(db, companyID, userID); err != nil {
		return nil, err
	}

	var contacts []models.Contact
	err := db.Where("company_id = ?", companyID).Order("id ASC").Find(&contacts).Error
	return contacts, err
}

// GetByIDAndUserID 根据ID和用户ID获取联系人
func (r *ContactRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.Contact, error) {
	return findOwnedContact(r.db.WithContext(ctx), id, userID)
}

// Update 在事务中加载联系人并应用修改
func (r *ContactRepository) Update(ctx context.Context, id, userID uint, apply func(*models.Contact) error) (*models.Contact, error) {
	var updated *models.Contact
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := findOwnedContact(tx, id, userID)
		if err != nil {
			return err
		}
		companyID := contact.CompanyID
		if err := apply(contact); err != nil {
			return err
		}
		contact.ID, contact.CompanyID = id, companyID
		if err := tx.Omit(clause.Associations).Save(contact).Error; err != nil {
			return err
		}
		updated = contact
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 删除联系人
func (r *ContactRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedContact(tx, id, userID); err != nil {
			return err
		}
		return tx.Delete(&models.Contact{}, id).Error
	})
}
