package dto

import "time"

// ResumeResponse 简历元数据
type ResumeResponse struct {
	ID            uint      `json:"id"`
	Filename      string    `json:"filename"`
	Version       int       `json:"version"`
	FileSize      int       `json:"file_size"`
	ContentType   string    `json:"content_type"`
	UploadDate    time.Time `json:"upload_date"`
	ApplicationID uint      `json:"application_id"`
}

// ResumeFile 下载用的简历内容
type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
