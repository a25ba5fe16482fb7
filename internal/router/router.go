package router

import (
	"net/http"

	"github.com/Mallesh-145/job-application-tracker/internal/config"
	"github.com/Mallesh-145/job-application-tracker/internal/handler"
	"github.com/Mallesh-145/job-application-tracker/internal/metrics"
	"github.com/Mallesh-145/job-application-tracker/internal/middleware"
	"github.com/Mallesh-145/job-application-tracker/internal/repository"
	"github.com/Mallesh-145/job-application-tracker/internal/service"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies 路由依赖
type Dependencies struct {
	Config     *config.Config
	JWTManager *utils.JWTManager
	Logger     *logrus.Logger
	DB         *gorm.DB
	// LoginGuard 为 nil 时不限制登录失败次数
	LoginGuard service.LoginGuard
}

// Services 路由使用的服务，供启动流程复用（例如初始化管理员）
type Services struct {
	Auth        *service.AuthService
	Audit       *service.AuditService
	Company     *service.CompanyService
	Application *service.ApplicationService
	Contact     *service.ContactService
	Resume      *service.ResumeService
	Admin       *service.AdminService

	users *repository.UserRepository
}

// NewServices 初始化Repository和Service
func NewServices(deps Dependencies) *Services {
	userRepo := repository.NewUserRepository(deps.DB)
	companyRepo := repository.NewCompanyRepository(deps.DB)
	applicationRepo := repository.NewApplicationRepository(deps.DB)
	contactRepo := repository.NewContactRepository(deps.DB)
	resumeRepo := repository.NewResumeRepository(deps.DB)
	auditRepo := repository.NewAuditLogRepository(deps.DB)

	audit := service.NewAuditService(auditRepo, deps.Logger)

	return &Services{
		Auth:        service.NewAuthService(userRepo, deps.JWTManager, audit, deps.LoginGuard, deps.Logger, deps.Config),
		Audit:       audit,
		Company:     service.NewCompanyService(companyRepo, audit),
		Application: service.NewApplicationService(applicationRepo, audit),
		Contact:     service.NewContactService(contactRepo, audit),
		Resume:      service.NewResumeService(resumeRepo, audit),
		Admin:       service.NewAdminService(userRepo, audit),
		users:       userRepo,
	}
}

// SetupRouter 设置路由
func SetupRouter(deps Dependencies, services *Services) *gin.Engine {
	cfg := deps.Config
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.InitValidator()

	r := gin.New()
	r.MaxMultipartMemory = cfg.Upload.GetMaxBytes()

	// 全局中间件
	r.Use(middleware.CorrelationID())
	r.Use(middleware.LoggerMiddleware(deps.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))
	r.Use(metrics.GinMiddleware())

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Job Application Tracker API",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authHandler := handler.NewAuthHandler(services.Auth)
	companyHandler := handler.NewCompanyHandler(services.Company, services.Application, services.Contact)
	applicationHandler := handler.NewApplicationHandler(services.Application)
	contactHandler := handler.NewContactHandler(services.Contact)
	resumeHandler := handler.NewResumeHandler(services.Resume, cfg.Upload.GetMaxBytes())
	adminHandler := handler.NewAdminHandler(services.Admin, services.Audit)

	api := r.Group("/api")
	{
		// 公开路由
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// 认证路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(deps.JWTManager, services.users))
		{
			authorized.GET("/me", authHandler.GetMe)

			// 公司
			authorized.POST("/companies", companyHandler.Create)
			authorized.GET("/companies", companyHandler.List)
			authorized.GET("/companies/:id", companyHandler.Get)
			authorized.PUT("/companies/:id", companyHandler.Update)
			authorized.DELETE("/companies/:id", companyHandler.Delete)
			authorized.GET("/companies/:id/applications", companyHandler.ListApplications)
			authorized.GET("/companies/:id/contacts", companyHandler.ListContacts)

			// 职位申请
			authorized.POST("/applications", applicationHandler.Create)
			authorized.GET("/applications/:id", applicationHandler.Get)
			authorized.PUT("/applications/:id", applicationHandler.Update)
			authorized.DELETE("/applications/:id", applicationHandler.Delete)

			// 简历
			authorized.POST("/applications/:id/resumes", resumeHandler.Upload)
			authorized.GET("/applications/:id/resumes", resumeHandler.List)
			authorized.GET("/resumes/:id/download", resumeHandler.Download)
			authorized.DELETE("/resumes/:id", resumeHandler.Delete)

			// 联系人
			authorized.POST("/contacts", contactHandler.Create)
			authorized.GET("/contacts/:id", contactHandler.Get)
			authorized.PUT("/contacts/:id", contactHandler.Update)
			authorized.DELETE("/contacts/:id", contactHandler.Delete)

			// 管理员接口
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.AdminMiddleware())
			{
				adminGroup.GET("/users", adminHandler.ListUsers)
				adminGroup.POST("/users/:id/status", adminHandler.UpdateUserStatus)
				adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
				adminGroup.GET("/logs", adminHandler.ListLogs)
				adminGroup.GET("/export-logs", adminHandler.ExportLogs)
			}
		}
	}

	return r
}
