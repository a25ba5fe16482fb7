package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mallesh-145/job-application-tracker/internal/config"
	"github.com/Mallesh-145/job-application-tracker/internal/models"
	"github.com/Mallesh-145/job-application-tracker/internal/router"
	"github.com/Mallesh-145/job-application-tracker/internal/service"
	"github.com/Mallesh-145/job-application-tracker/internal/utils"
	"github.com/Mallesh-145/job-application-tracker/pkg/loginguard"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "jobtracker",
		Short:         "Job application tracker API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config/config.yaml)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update database tables",
			RunE:  runMigrate,
		},
		&cobra.Command{
			Use:   "create-admin",
			Short: "Create the configured admin account, or promote it if it exists",
			RunE:  runCreateAdmin,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app 启动期共享的组件
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	db     *gorm.DB
	jwt    *utils.JWTManager
}

func bootstrap() (*app, error) {
	_ = godotenv.Load() // .env 可选，不存在时只用环境变量

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := models.OpenDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	jwtManager, err := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Algorithm, cfg.JWT.GetExpireDuration())
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, db: db, jwt: jwtManager}, nil
}

func newLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (a *app) dependencies(guard service.LoginGuard) router.Dependencies {
	return router.Dependencies{
		Config:     a.cfg,
		JWTManager: a.jwt,
		Logger:     a.logger,
		DB:         a.db,
		LoginGuard: guard,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Info("database migrated")
	return nil
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	services := router.NewServices(a.dependencies(nil))
	return services.Auth.InitAdmin(cmd.Context())
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var guard service.LoginGuard
	if a.cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.GetAddress(),
			DB:       a.cfg.Redis.DB,
			Password: a.cfg.Redis.Password,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			a.logger.WithError(err).Warn("redis unreachable, login lockout will fail open until it recovers")
		}
		guard = loginguard.New(redisClient, a.cfg.Login.MaxAttempts, "jobtracker:login_failures:", a.cfg.Login.GetLockoutDuration())
	} else {
		a.logger.Info("redis not configured, login lockout disabled")
	}

	deps := a.dependencies(guard)
	services := router.NewServices(deps)

	if err := services.Auth.InitAdmin(ctx); err != nil {
		a.logger.WithError(err).Warn("init admin failed")
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.GetAddress(),
		Handler:           router.SetupRouter(deps, services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
