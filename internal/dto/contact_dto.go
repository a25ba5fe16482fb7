package dto

// CreateContactRequest 创建联系人请求
type CreateContactRequest struct {
	CompanyID uint    `json:"company_id" binding:"required"`
	Name      string  `json:"name" binding:"required,max=150"`
	Email     *string `json:"email" binding:"omitempty,max=150"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

// UpdateContactRequest 更新联系人请求
type UpdateContactRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=150"`
	Email *string `json:"email" binding:"omitempty,max=150"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
}

// ContactResponse 联系人响应
type ContactResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	CompanyID uint    `json:"company_id"`
}
