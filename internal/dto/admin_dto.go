package dto

import "time"

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// UpdateUserStatusRequest 修改用户状态，不传 status 时切换当前状态
type UpdateUserStatusRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=active disabled"`
}

// AuditLogResponse 审计日志
type AuditLogResponse struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
