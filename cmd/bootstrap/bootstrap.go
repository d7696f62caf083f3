package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient-registration/config"
	deliveryHttp "patient-registration/internal/delivery/http"
	"patient-registration/internal/delivery/http/handler"
	"patient-registration/internal/delivery/http/middleware"
	"patient-registration/internal/domain/entity"
	domainRepo "patient-registration/internal/domain/repository"
	"patient-registration/internal/infrastructure/cache"
	"patient-registration/internal/infrastructure/database"
	"patient-registration/internal/infrastructure/storage"
	"patient-registration/internal/repository"
	"patient-registration/internal/service"
	"patient-registration/internal/usecase"
	"patient-registration/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// backend is the persistence chosen by STORAGE_DRIVER.
type backend struct {
	storage   domainRepo.Storage
	idCounter domainRepo.IDCounterRepository
	auditRepo domainRepo.AuditLogRepository
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context, configPath string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	b, err := app.openBackend(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	logrus.Infof("Using %s storage", cfg.Storage.Driver)

	// Initialize all layers
	server, err := initializeServer(ctx, cfg, b)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func gormLogLevel() logger.LogLevel {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		return logger.Info
	}
	return logger.Warn
}

func (app *App) openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	seed := cfg.Patient.IDSeed

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := storage.NewMemoryStorage()
		return &backend{
			storage:   store,
			idCounter: repository.NewIDCounterRepository(store, seed),
			auditRepo: repository.NewMemoryAuditLogRepository(),
		}, nil

	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		db, err := app.openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		app.DB = db
		store := storage.NewGormStorage(db)
		return &backend{
			storage:   store,
			idCounter: repository.NewIDCounterRepository(store, seed),
			auditRepo: repository.NewAuditLogRepository(db),
		}, nil

	case config.StorageDriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.RedisClient = client
		return &backend{
			storage:   storage.NewRedisStorage(client, cfg.Redis.KeyPrefix),
			idCounter: storage.NewRedisIDCounter(client, cfg.Redis.KeyPrefix+entity.StorageKeyNextPatientID, seed),
			auditRepo: repository.NewMemoryAuditLogRepository(),
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func (app *App) openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Storage.Driver == config.StorageDriverSQLite {
		db, err := database.NewSQLiteConnection(cfg.Storage.SQLitePath, gormLogLevel())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, nil
	}

	if err := database.MigratePostgres(cfg.DB); err != nil {
		return nil, err
	}
	db, err := database.NewPostgresConnection(cfg.DB, gormLogLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logrus.Info("Database connected successfully")
	return db, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(ctx context.Context, cfg *config.Config, b *backend) (*http.Server, error) {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories and services
	patientRepo := repository.NewPatientRepository(b.storage)
	auditService := service.NewAuditService(log, b.auditRepo)

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, b.idCounter, auditService, cfg.Patient.IDPrefix)
	if err := patientUsecase.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}
	auditLogUsecase := usecase.NewAuditLogUsecase(log, b.auditRepo)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	pageHandler := handler.NewPageHandler(patientUsecase, customValidator, log, cfg.Patient.SuccessBannerDelay)

	// Initialize middleware
	requestMiddleware := middleware.NewRequestMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(patientHandler, auditLogHandler, pageHandler, requestMiddleware, corsMiddleware)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
