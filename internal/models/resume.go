package models

import (
	"time"
)

// Resume 简历文件，内容直接保存在行内
type Resume struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Filename      string    `gorm:"size:300;not null" json:"filename"`
	Version       int       `gorm:"not null;uniqueIndex:idx_resume_application_version" json:"version"`
	Data          []byte    `gorm:"not null" json:"-"`
	FileSize      int       `gorm:"not null" json:"file_size"`
	ContentType   string    `gorm:"size:100;not null" json:"content_type"`
	ApplicationID uint      `gorm:"not null;uniqueIndex:idx_resume_application_version" json:"application_id"`
	UploadDate    time.Time `gorm:"autoCreateTime" json:"upload_date"`

	Application JobApplication `gorm:"foreignKey:ApplicationID" json:"-"`
}

// TableName 指定表名
func (Resume) TableName() string {
	return "resumes"
}
