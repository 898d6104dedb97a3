package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trivia_backend/internal/config"
	"trivia_backend/internal/controller"
	"trivia_backend/internal/repository"
	"trivia_backend/internal/service"
	"trivia_backend/pkg/database"
	"trivia_backend/pkg/logger"
	"trivia_backend/pkg/monitoring"
	"trivia_backend/pkg/security"
	"trivia_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider interface {
		Shutdown(context.Context) error
	}
}

type repositories struct {
	event    *repository.EventRepository
	group    *repository.GroupRepository
	section  *repository.SectionRepository
	question *repository.QuestionRepository
	user     *repository.UserRepository
	attempt  *repository.AttemptRepository
	result   *repository.ResultRepository
}

type services struct {
	event         *service.EventService
	group         *service.GroupService
	section       *service.SectionService
	question      *service.QuestionService
	user          *service.UserService
	participation *service.ParticipationService
	report        *service.ReportService
}

type controllers struct {
	event         *controller.EventController
	group         *controller.GroupController
	section       *controller.SectionController
	question      *controller.QuestionController
	user          *controller.UserController
	participation *controller.ParticipationController
	report        *controller.ReportController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		event:    repository.NewEventRepository(db),
		group:    repository.NewGroupRepository(db),
		section:  repository.NewSectionRepository(db),
		question: repository.NewQuestionRepository(db),
		user:     repository.NewUserRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		result:   repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, db *gorm.DB, rdb *redis.Client) *services {
	return &services{
		event:         service.NewEventService(repos.event),
		group:         service.NewGroupService(repos.group, repos.event, rdb),
		section:       service.NewSectionService(repos.section, repos.event),
		question:      service.NewQuestionService(repos.question, repos.section, db),
		user:          service.NewUserService(repos.user),
		participation: service.NewParticipationService(repos.attempt, repos.group, repos.user, repos.question, db),
		report:        service.NewReportService(repos.attempt, repos.result, db),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		event:         controller.NewEventController(s.event),
		group:         controller.NewGroupController(s.group),
		section:       controller.NewSectionController(s.section),
		question:      controller.NewQuestionController(s.question),
		user:          controller.NewUserController(s.user),
		participation: controller.NewParticipationController(s.participation, a.Config),
		report:        controller.NewReportController(s.report),
		health:        controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The cache is an optimization; the API works without it.
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, db, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("trivia-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis client", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
