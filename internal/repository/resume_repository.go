package repository

import (
	"context"

	"github.com/Mallesh-145/job-application-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResumeRepository 简历数据访问层
type ResumeRepository struct {
	db *gorm.DB
}

// NewResumeRepository 创建简历Repository
func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// CreateVersioned 在同一事务中分配版本号并保存简历
// 版本号来自申请行上的计数器，UPDATE 持有行锁，并发上传不会拿到相同版本，删除简历也不会回退
func (r *ResumeRepository) CreateVersioned(ctx context.Context, applicationID, userID uint, build func(version int) *models.Resume) (*models.Resume, error) {
	var created *models.Resume
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedApplication(tx, applicationID, userID); err != nil {
			return err
		}

		err := tx.Model(&models.JobApplication{}).
			Where("id = ?", applicationID).
			UpdateColumn("resume_seq", gorm.Expr("resume_seq + ?", 1)).Error
		if err != nil {
			return err
		}

		var version int
		err = tx.Model(&models.JobApplication{}).
			Select("resume_seq").
			Where("id = ?", applicationID).
			Scan(&version).Error
		if err != nil {
			return err
		}

		resume := build(version)
		resume.ApplicationID = applicationID
		resume.Version = version
		if err := tx.Omit(clause.Associations).Create(resume).Error; err != nil {
			return translateError(err)
		}
		created = resume
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListByApplication 获取申请下的简历元数据，不加载文件内容
func (r *ResumeRepository) ListByApplication(ctx context.Context, applicationID, userID uint) ([]models.Resume, error) {
	db := r.db.WithContext(ctx)
	if _, err := findOwnedApplication(db, applicationID, userID); err != nil {
		return nil, err
	}

	var resumes []models.Resume
	err := db.Omit("data").Where("application_id = ?", applicationID).Order("version ASC").Find(&resumes).Error
	return resumes, err
}

// GetByIDAndUserID 根据ID和用户ID获取简历（含文件内容）
func (r *ResumeRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.Resume, error) {
	return findOwnedResume(r.db.WithContext(ctx), id, userID)
}

// Delete 删除简历
func (r *ResumeRepository) Delete(ctx context.Context, id, userID uint) (*models.Resume, error) {
	var deleted *models.Resume
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resume, err := findOwnedResume(tx, id, userID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Resume{}, id).Error; err != nil {
			return err
		}
		deleted = resume
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
