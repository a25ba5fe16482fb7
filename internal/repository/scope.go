package repository

import (
	"github.com/Mallesh-145/job-application-tracker/internal/models"

	"gorm.io/gorm"
)

// 所有按ID的查询都必须经过以下作用域，沿 User → Company → 子资源 的外键链过滤

func findOwnedCompany(tx *gorm.DB, id, userID uint) (*models.Company, error) {
	var company models.Company
	err := tx.Where("id = ? AND user_id = ?", id, userID).First(&company).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &company, nil
}

func findOwnedApplication(tx *gorm.DB, id, userID uint) (*models.JobApplication, error) {
	var app models.JobApplication
	err := tx.Joins("JOIN companies ON companies.id = job_applications.company_id").
		Where("job_applications.id = ? AND companies.user_id = ?", id, userID).
		First(&app).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

func findOwnedContact(tx *gorm.DB, id, userID uint) (*models.Contact, error) {
	var contact models.Contact
	err := tx.Joins("JOIN companies ON companies.id = contacts.company_id").
		Where("contacts.id = ? AND companies.user_id = ?", id, userID).
		First(&contact).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &contact, nil
}

func findOwnedResume(tx *gorm.DB, id, userID uint) (*models.Resume, error) {
	var resume models.Resume
	err := tx.Joins("JOIN job_applications ON job_applications.id = resumes.application_id").
		Joins("JOIN companies ON companies.id = job_applications.company_id").
		Where("resumes.id = ? AND companies.user_id = ?", id, userID).
		First(&resume).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &resume, nil
}

// deleteApplications 删除申请及其简历
func deleteApplications(tx *gorm.DB, appIDs []uint) error {
	if len(appIDs) == 0 {
		return nil
	}
	if err := tx.Where("application_id IN ?", appIDs).Delete(&models.Resume{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", appIDs).Delete(&models.JobApplication{}).Error
}

// deleteCompanies 删除公司及其全部子资源
// 先取出ID再删除，mysql 不允许在 DELETE 的子查询里引用同一张表
func deleteCompanies(tx *gorm.DB, companyIDs []uint) error {
	if len(companyIDs) == 0 {
		return nil
	}

	var appIDs []uint
	if err := tx.Model(&models.JobApplication{}).Where("company_id IN ?", companyIDs).Pluck("id", &appIDs).Error; err != nil {
		return err
	}
	if err := deleteApplications(tx, appIDs); err != nil {
		return err
	}
	if err := tx.Where("company_id IN ?", companyIDs).Delete(&models.Contact{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", companyIDs).Delete(&models.Company{}).Error
}
