package app

import (
	"classroom_backend/internal/config"
	"classroom_backend/internal/controller"
	"classroom_backend/internal/middleware"
	"classroom_backend/internal/repository"
	"classroom_backend/internal/service"
	"classroom_backend/pkg/configwatcher"
	"classroom_backend/pkg/database"
	"classroom_backend/pkg/logger"
	"classroom_backend/pkg/monitoring"
	"classroom_backend/pkg/security"
	"classroom_backend/pkg/tracing"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	userData     *repository.UserDataRepository
	message      *repository.MessageRepository
	post         *repository.PostRepository
	notification *repository.NotificationRepository
}

type services struct {
	userData     *service.UserDataService
	message      *service.MessageService
	post         *service.PostService
	notification *service.NotificationService
	storage      *service.StorageService
}

type controllers struct {
	health       *controller.HealthController
	userData     *controller.UserDataController
	message      *controller.MessageController
	post         *controller.PostController
	notification *controller.NotificationController
	upload       *controller.UploadController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		userData:     repository.NewUserDataRepository(db),
		message:      repository.NewMessageRepository(db),
		post:         repository.NewPostRepository(db),
		notification: repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	return &services{
		userData:     service.NewUserDataService(repos.userData, rdb, time.Duration(cfg.Redis.TTLMinutes)*time.Minute),
		message:      service.NewMessageService(repos.message),
		post:         service.NewPostService(repos.post),
		notification: service.NewNotificationService(repos.notification),
		storage:      service.NewStorageService(cfg),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		health:       controller.NewHealthController(db),
		userData:     controller.NewUserDataController(s.userData),
		message:      controller.NewMessageController(s.message),
		post:         controller.NewPostController(s.post),
		notification: controller.NewNotificationController(s.notification),
		upload:       controller.NewUploadController(s.storage),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 用已打开的连接组装路由, 测试直接使用; rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	app := &App{
		Config:    cfg,
		ConfigDir: "configs",
		DB:        db,
		Redis:     rdb,
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, rdb)
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg.Server.Mode)
	})

	return app
}

// NewApp 按配置打开数据库, Redis 和追踪后组装应用
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// InitDB 已完成建表
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时直接读写 SQLite
		logger.Log.Warn("Redis unavailable, bundle cache disabled", zap.Error(err))
		rdb = nil
	}

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer("classroom-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		}
	}

	app := New(cfg, db, rdb)
	app.tracer = tp
	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		err := configwatcher.WatchConfig(ctx, a.ConfigDir, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil && !os.IsNotExist(err) {
			logger.Log.Warn("Config watcher disabled", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
