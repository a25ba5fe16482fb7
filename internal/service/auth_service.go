package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mallesh-145/job-application-tracker/internal/config"
	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"
	"github.com/Mallesh-145/job-application-tracker/pkg/loginguard"

	"github.com/sirupsen/logrus"
)

// LoginGuard 登录失败计数
type LoginGuard interface {
	Check(ctx context.Context, username string) error
	RecordFailure(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	audit      *AuditService
	guard      LoginGuard
	logger     *logrus.Logger
	cfg        *config.Config
}

// NewAuthService 创建认证服务，guard 为 nil 时不做登录失败限制
func NewAuthService(
	userRepo *repository.UserRepository,
	jwtManager *utils.JWTManager,
	audit *AuditService,
	guard LoginGuard,
	logger *logrus.Logger,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		audit:      audit,
		guard:      guard,
		logger:     logger,
		cfg:        cfg,
	}
}

// Register 用户注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationError("%v", err)
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, mapRepoError(err, "user")
	}
	if exists {
		return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsAdmin:      false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return nil, mapRepoError(err, "user")
	}

	s.audit.Record(ctx, user.ID, models.ActionRegister, fmt.Sprintf("User %s registered", user.Username))

	info := toUserInfo(user)
	return &info, nil
}

// Login 用户登录
// 用户名不存在和密码错误返回同一个错误；密码正确但账户被禁用时单独返回 ErrAccountDisabled
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.checkGuard(ctx, req.Username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordFailure(ctx, req.Username)
			return nil, ErrInvalidCredentials
		}
		return nil, mapRepoError(err, "user")
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		s.recordFailure(ctx, req.Username)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	s.resetGuard(ctx, req.Username)

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("%w: generate token: %v", ErrInternal, err)
	}

	s.audit.Record(ctx, user.ID, models.ActionLogin, fmt.Sprintf("User %s logged in", user.Username))

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int64(s.jwtManager.ExpireTime().Seconds()),
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
	}, nil
}

// GetMe 获取当前用户信息
func (s *AuthService) GetMe(ctx context.Context, userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "user")
	}
	info := toUserInfo(user)
	return &info, nil
}

// InitAdmin 初始化管理员账户
// 配置的管理员用户名已存在时只确保其为启用的管理员，不覆盖密码
func (s *AuthService) InitAdmin(ctx context.Context) error {
	existing, err := s.userRepo.GetByUsername(ctx, s.cfg.Admin.Username)
	if err == nil {
		if existing.IsAdmin && existing.IsActive {
			return nil
		}
		existing.IsAdmin = true
		existing.IsActive = true
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.logger.WithField("username", existing.Username).Info("existing user promoted to admin")
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	// 配置中的密码可以直接是bcrypt哈希
	passwordHash := s.cfg.Admin.Password
	if !utils.IsBcryptHash(passwordHash) {
		passwordHash, err = utils.HashPassword(s.cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
	}

	user := &models.User{
		Username:     s.cfg.Admin.Username,
		Email:        s.cfg.Admin.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.WithField("username", user.Username).Info("admin account created")
	return nil
}

// checkGuard Redis不可用时放行，只记录日志
func (s *AuthService) checkGuard(ctx context.Context, username string) error {
	if s.guard == nil {
		return nil
	}
	err := s.guard.Check(ctx, username)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, loginguard.ErrLocked):
		return ErrTooManyAttempts
	default:
		s.logger.WithError(err).Warn("login guard unavailable")
		return nil
	}
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.guard == nil {
		return
	}
	count, err := s.guard.RecordFailure(ctx, username)
	if err != nil {
		s.logger.WithError(err).Warn("login guard unavailable")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"username": username,
		"failures": count,
	}).Info("login failed")
}

func (s *AuthService) resetGuard(ctx context.Context, username string) {
	if s.guard == nil {
		return
	}
	if err := s.guard.Reset(ctx, username); err != nil {
		s.logger.WithError(err).Warn("login guard unavailable")
	}
}

func toUserInfo(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}
