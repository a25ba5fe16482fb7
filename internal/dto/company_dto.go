package dto

import "time"

// CreateCompanyRequest 创建公司请求
type CreateCompanyRequest struct {
	Name       string  `json:"name" binding:"required,max=120"`
	Address    *string `json:"address" binding:"omitempty,max=250"`
	WebsiteURL *string `json:"website_url" binding:"omitempty,max=500"`
}

// UpdateCompanyRequest 更新公司请求，未提供的字段保持原值
type UpdateCompanyRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=120"`
	Address    *string `json:"address" binding:"omitempty,max=250"`
	WebsiteURL *string `json:"website_url" binding:"omitempty,max=500"`
}

// CompanyResponse 公司响应
type CompanyResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Address    *string   `json:"address"`
	WebsiteURL *string   `json:"website_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
