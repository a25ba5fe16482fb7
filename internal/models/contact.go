package models

import (
	"time"
)

// Contact 公司联系人
type Contact struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Email     *string   `gorm:"size:150" json:"email"`
	Phone     *string   `gorm:"size:50" json:"phone"`
	CompanyID uint      `gorm:"not null;index" json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// TableName 指定表名
func (Contact) TableName() string {
	return "contacts"
}
