package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mallesh-145/job-application-tracker/internal/config"
	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	cfg    *config.Config
	logger *logrus.Logger
	jwt    *utils.JWTManager

	users *repository.UserRepository
	audit *AuditService

	auth         *AuthService
	companies    *CompanyService
	applications *ApplicationService
	contacts     *ContactService
	resumes      *ResumeService
	admin        *AdminService
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestEnv(t *testing.T, guard LoginGuard) *testEnv {
	t.Helper()

	db, err := models.OpenDB(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Admin: config.AdminConfig{Username: "admin", Email: "admin@localhost", Password: "admin-pass"},
	}
	jwtManager, err := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	logger := newTestLogger()
	users := repository.NewUserRepository(db)
	audit := NewAuditService(repository.NewAuditLogRepository(db), logger)

	return &testEnv{
		db:           db,
		cfg:          cfg,
		logger:       logger,
		jwt:          jwtManager,
		users:        users,
		audit:        audit,
		auth:         NewAuthService(users, jwtManager, audit, guard, logger, cfg),
		companies:    NewCompanyService(repository.NewCompanyRepository(db), audit),
		applications: NewApplicationService(repository.NewApplicationRepository(db), audit),
		contacts:     NewContactService(repository.NewContactRepository(db), audit),
		resumes:      NewResumeService(repository.NewResumeRepository(db), audit),
		admin:        NewAdminService(users, audit),
	}
}

func (e *testEnv) register(t *testing.T, username string) *dto.UserInfo {
	t.Helper()
	user, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createCompany(t *testing.T, userID uint, name string) *dto.CompanyResponse {
	t.Helper()
	company, err := e.companies.Create(context.Background(), userID, &dto.CreateCompanyRequest{Name: name})
	require.NoError(t, err)
	return company
}

func (e *testEnv) createApplication(t *testing.T, userID, companyID uint) *dto.ApplicationResponse {
	t.Helper()
	app, err := e.applications.Create(context.Background(), userID, &dto.CreateApplicationRequest{
		CompanyID: companyID,
		JobTitle:  "Backend Engineer",
	})
	require.NoError(t, err)
	return app
}

func (e *testEnv) auditActions(t *testing.T) []string {
	t.Helper()
	var actions []string
	require.NoError(t, e.db.Model(&models.AuditLog{}).Order("id ASC").Pluck("action", &actions).Error)
	return actions
}

// auditActors 按写入顺序返回审计记录的操作者ID，System 记为 0
func (e *testEnv) auditActors(t *testing.T) []uint {
	t.Helper()
	var entries []models.AuditLog
	require.NoError(t, e.db.Order("id ASC").Find(&entries).Error)
	actors := make([]uint, 0, len(entries))
	for _, entry := range entries {
		if entry.UserID == nil {
			actors = append(actors, 0)
			continue
		}
		actors = append(actors, *entry.UserID)
	}
	return actors
}

func strPtr(s string) *string {
	return &s
}
