package repository

import (
	"context"

	"github.com/Mallesh-145/job-application-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompanyRepository 公司数据访问层，所有方法都按 user_id 过滤
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository 创建公司Repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create 创建公司
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(company).Error
	})
}

// ListByUserID 获取用户的公司列表
func (r *CompanyRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&companies).Error
	return companies, err
}

// GetByIDAndUserID 根据ID和用户ID获取公司
func (r *CompanyRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.Company, error) {
	return findOwnedCompany(r.db.WithContext(ctx), id, userID)
}

// Update 在事务中加载公司并应用修改
func (r *CompanyRepository) Update(ctx context.Context, id, userID uint, apply func(*models.Company) error) (*models.Company, error) {
	var updated *models.Company
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company, err := findOwnedCompany(tx, id, userID)
		if err != nil {
			return err
		}
		if err := apply(company); err != nil {
			return err
		}
		// 归属不可修改
		company.ID, company.UserID = id, userID
		if err := tx.Omit(clause.Associations).Save(company).Error; err != nil {
			return err
		}
		updated = company
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 删除公司，级联删除申请、简历和联系人
func (r *CompanyRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedCompany(tx, id, userID); err != nil {
			return err
		}
		return deleteCompanies(tx, []uint{id})
	})
}
