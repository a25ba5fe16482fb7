package dto

import "time"

// CreateApplicationRequest 创建申请请求
// ApplicationDate 支持 RFC3339 或 2006-01-02
type CreateApplicationRequest struct {
	CompanyID       uint    `json:"company_id" binding:"required"`
	JobTitle        string  `json:"job_title" binding:"required,max=200"`
	Status          *string `json:"status" binding:"omitempty,jobstatus"`
	ApplicationDate *string `json:"application_date"`
	Notes           *string `json:"notes"`
	JobURL          *string `json:"job_url" binding:"omitempty,max=500"`
}

// UpdateApplicationRequest 更新申请请求，未提供的字段保持原值
type UpdateApplicationRequest struct {
	JobTitle        *string `json:"job_title" binding:"omitempty,min=1,max=200"`
	Status          *string `json:"status" binding:"omitempty,jobstatus"`
	ApplicationDate *string `json:"application_date"`
	Notes           *string `json:"notes"`
	JobURL          *string `json:"job_url" binding:"omitempty,max=500"`
}

// ApplicationResponse 申请响应
type ApplicationResponse struct {
	ID              uint       `json:"id"`
	JobTitle        string     `json:"job_title"`
	Status          string     `json:"status"`
	ApplicationDate *time.Time `json:"application_date"`
	Notes           *string    `json:"notes"`
	JobURL          *string    `json:"job_url"`
	CompanyID       uint       `json:"company_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
