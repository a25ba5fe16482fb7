package models

import (
	"time"
)

// 审计动作
const (
	ActionRegister          = "REGISTER"
	ActionLogin             = "LOGIN"
	ActionCreateCompany     = "CREATE_COMPANY"
	ActionUpdateCompany     = "UPDATE_COMPANY"
	ActionDeleteCompany     = "DELETE_COMPANY"
	ActionCreateApplication = "CREATE_APPLICATION"
	ActionUpdateApplication = "UPDATE_APPLICATION"
	ActionDeleteApplication = "DELETE_APPLICATION"
	ActionCreateContact     = "CREATE_CONTACT"
	ActionUpdateContact     = "UPDATE_CONTACT"
	ActionDeleteContact     = "DELETE_CONTACT"
	ActionUploadResume      = "UPLOAD_RESUME"
	ActionDeleteResume      = "DELETE_RESUME"
	ActionUpdateUserStatus  = "UPDATE_USER_STATUS"
	ActionDeleteUser        = "DELETE_USER"
)

// AuditLog 审计日志，只追加不修改
type AuditLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:64;not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_logs"
}
