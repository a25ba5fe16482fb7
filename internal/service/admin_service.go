package service

import (
	"context"
	"fmt"

	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
)

// AdminService 管理员服务
type AdminService struct {
	userRepo *repository.UserRepository
	audit    *AuditService
}

// NewAdminService 创建管理员服务
func NewAdminService(userRepo *repository.UserRepository, audit *AuditService) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		audit:    audit,
	}
}

// ListUsers 分页获取用户
func (s *AdminService) ListUsers(ctx context.Context, query dto.PageQuery) (*dto.PaginatedResponse, error) {
	query.Normalize()
	users, total, err := s.userRepo.List(ctx, query.Offset(), query.PerPage)
	if err != nil {
		return nil, mapRepoError(err, "users")
	}

	items := make([]dto.UserInfo, len(users))
	for i := range users {
		items[i] = toUserInfo(&users[i])
	}

	return &dto.PaginatedResponse{
		Items:   items,
		Total:   total,
		Page:    query.Page,
		PerPage: query.PerPage,
	}, nil
}

// UpdateUserStatus 启用/禁用用户，status 为空时切换；管理员账户不能被禁用
func (s *AdminService) UpdateUserStatus(ctx context.Context, actorID, targetID uint, status *string) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, mapRepoError(err, "user")
	}

	active := !user.IsActive
	if status != nil {
		switch *status {
		case dto.UserStatusActive:
			active = true
		case dto.UserStatusDisabled:
			active = false
		default:
			return nil, validationError("status must be %q or %q", dto.UserStatusActive, dto.UserStatusDisabled)
		}
	}

	if user.IsAdmin && !active {
		return nil, validationError("cannot disable an admin account")
	}

	if err := s.userRepo.SetActive(ctx, targetID, active); err != nil {
		return nil, mapRepoError(err, "user")
	}
	user.IsActive = active

	s.audit.Record(ctx, actorID, models.ActionUpdateUserStatus,
		fmt.Sprintf("Set user %s (id=%d) to %s", user.Username, user.ID, statusName(active)))

	info := toUserInfo(user)
	return &info, nil
}

// DeleteUser 删除用户及其全部数据；管理员账户不能被删除
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return mapRepoError(err, "user")
	}
	if user.IsAdmin {
		return validationError("cannot delete an admin account")
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return mapRepoError(err, "user")
	}

	s.audit.Record(ctx, actorID, models.ActionDeleteUser, fmt.Sprintf("Deleted user %s (id=%d)", user.Username, user.ID))
	return nil
}

func statusName(active bool) string {
	if active {
		return dto.UserStatusActive
	}
	return dto.UserStatusDisabled
}
