package models

import (
	"time"
)

// 投递状态
const (
	StatusToApply      = "To Apply"
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusOffer        = "Offer"
	StatusRejected     = "Rejected"
	StatusWithdrawn    = "Withdrawn"
)

var applicationStatuses = map[string]struct{}{
	StatusToApply:      {},
	StatusApplied:      {},
	StatusInterviewing: {},
	StatusOffer:        {},
	StatusRejected:     {},
	StatusWithdrawn:    {},
}

// IsValidStatus 判断是否为合法的投递状态
func IsValidStatus(status string) bool {
	_, ok := applicationStatuses[status]
	return ok
}

// JobApplication 职位申请模型
type JobApplication struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	JobTitle        string     `gorm:"size:200;not null" json:"job_title"`
	Status          string     `gorm:"size:50;not null;default:'To Apply'" json:"status"`
	ApplicationDate *time.Time `json:"application_date"`
	Notes           *string    `gorm:"type:text" json:"notes"`
	JobURL          *string    `gorm:"size:500" json:"job_url"`
	CompanyID       uint       `gorm:"not null;index" json:"company_id"`
	// ResumeSeq 已分配的最大简历版本号，只增不减
	ResumeSeq int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Company Company  `gorm:"foreignKey:CompanyID" json:"-"`
	Resumes []Resume `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (JobApplication) TableName() string {
	return "job_applications"
}
