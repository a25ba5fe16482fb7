package service

import (
	"context"
	"time"

	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/metrics"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/sirupsen/logrus"
)

// SystemActor 操作人缺失时显示的名称
const SystemActor = "System"

// AuditStore 审计日志存储
type AuditStore interface {
	Create(ctx context.Context, log *models.AuditLog) error
	ListWithUsernames(ctx context.Context) ([]repository.AuditLogEntry, error)
}

// AuditService 审计日志服务
type AuditService struct {
	store  AuditStore
	logger *logrus.Logger
}

// NewAuditService 创建审计日志服务
func NewAuditService(store AuditStore, logger *logrus.Logger) *AuditService {
	return &AuditService{
		store:  store,
		logger: logger,
	}
}

// Record 记录一条审计日志
// 尽力而为：写入失败只记录运维日志，不会影响已经提交的业务操作。actorID 为 0 表示系统
func (s *AuditService) Record(ctx context.Context, actorID uint, action, details string) {
	entry := &models.AuditLog{
		Action:  action,
		Details: details,
	}
	if actorID != 0 {
		entry.UserID = &actorID
	}

	// 请求被取消也要尝试写入
	if err := s.store.Create(context.WithoutCancel(ctx), entry); err != nil {
		metrics.IncAuditWriteFailure(action)
		s.logger.WithFields(logrus.Fields{
			"actor_id": actorID,
			"action":   action,
			"error":    err.Error(),
		}).Warn("audit log write failed")
	}
}

// List 按时间倒序返回全部审计日志
func (s *AuditService) List(ctx context.Context) ([]dto.AuditLogResponse, error) {
	entries, err := s.store.ListWithUsernames(ctx)
	if err != nil {
		return nil, mapRepoError(err, "audit logs")
	}

	logs := make([]dto.AuditLogResponse, len(entries))
	for i, e := range entries {
		logs[i] = dto.AuditLogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Username:  actorName(e.Username),
			Action:    e.Action,
			Details:   e.Details,
			Timestamp: e.CreatedAt,
		}
	}
	return logs, nil
}

// ExportCSV 导出审计日志为CSV
func (s *AuditService) ExportCSV(ctx context.Context) ([]byte, error) {
	logs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(logs))
	for i, l := range logs {
		rows[i] = []string{
			l.Timestamp.UTC().Format(time.DateTime),
			l.Username,
			l.Action,
			l.Details,
		}
	}

	data, err := utils.WriteCSV([]string{"Timestamp", "Username", "Action", "Details"}, rows)
	if err != nil {
		return nil, mapRepoError(err, "audit export")
	}
	return data, nil
}

func actorName(username *string) string {
	if username == nil || *username == "" {
		return SystemActor
	}
	return *username
}
