package repository

import (
	"context"
	"time"

	"github.com/Mallesh-145/job-application-tracker/internal/models"

	"gorm.io/gorm"
)

// AuditLogEntry 带用户名的审计日志
type AuditLogEntry struct {
	ID        uint
	UserID    *uint
	Username  *string
	Action    string
	Details   string
	CreatedAt time.Time
}

// AuditLogRepository 审计日志数据访问层
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository 创建审计日志Repository
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create 写入一条审计日志，不参与调用方的事务
func (r *AuditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListWithUsernames 按时间倒序返回全部日志
func (r *AuditLogRepository) ListWithUsernames(ctx context.Context) ([]AuditLogEntry, error) {
	var entries []AuditLogEntry
	err := r.db.WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.id, audit_logs.user_id, users.username, audit_logs.action, audit_logs.details, audit_logs.created_at").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Order("audit_logs.created_at DESC, audit_logs.id DESC").
		Scan(&entries).Error
	return entries, err
}
