package models

import (
	"time"
)

// Company 公司模型，归属于创建它的用户，归属关系创建后不可变
type Company struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"size:120;not null" json:"name"`
	Address    *string   `gorm:"size:250" json:"address"`
	WebsiteURL *string   `gorm:"size:500" json:"website_url"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 关联
	Applications []JobApplication `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	Contacts     []Contact        `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Company) TableName() string {
	return "companies"
}
