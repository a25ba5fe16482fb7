package repository

import (
	"context"

	"github.com/Mallesh-145/job-application-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicationRepository 职位申请数据访问层，通过所属公司的 user_id 过滤
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository 创建申请Repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create 创建申请，公司必须属于该用户
func (r *ApplicationRepository) Create(ctx context.Context, userID uint, app *models.JobApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedCompany(tx, app.CompanyID, userID); err != nil {
			return err
		}
		app.ResumeSeq = 0
		return tx.Omit(clause.Associations).Create(app).Error
	})
}

// ListByCompany 获取公司下的申请列表
func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID, userID uint) ([]models.JobApplication, error) {
	db := r.db.WithContext(ctx)
	if _, err := findOwnedCompany(db, companyID, userID); err != nil {
		return nil, err
	}

	var apps []models.JobApplication
	err := db.Where("company_id = ?", companyID).Order("id ASC").Find(&apps).Error
	return apps, err
}

// GetByIDAndUserID 根据ID和用户ID获取申请
func (r *ApplicationRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.JobApplication, error) {
	return findOwnedApplication(r.db.WithContext(ctx), id, userID)
}

// Update 在事务中加载申请并应用修改
func (r *ApplicationRepository) Update(ctx context.Context, id, userID uint, apply func(*models.JobApplication) error) (*models.JobApplication, error) {
	var updated *models.JobApplication
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		app, err := findOwnedApplication(tx, id, userID)
		if err != nil {
			return err
		}
		companyID, seq := app.CompanyID, app.ResumeSeq
		if err := apply(app); err != nil {
			return err
		}
		// 所属公司和版本计数器不随更新改变
		app.ID, app.CompanyID, app.ResumeSeq = id, companyID, seq
		if err := tx.Omit(clause.Associations, "resume_seq").Save(app).Error; err != nil {
			return err
		}
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 删除申请及其简历
func (r *ApplicationRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedApplication(tx, id, userID); err != nil {
			return err
		}
		return deleteApplications(tx, []uint{id})
	})
}
