package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/controller"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/service"
	"exam_admin_backend/pkg/database"
	"exam_admin_backend/pkg/logger"
	"exam_admin_backend/pkg/monitoring"
	"exam_admin_backend/pkg/security"
	"exam_admin_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	professor  *repository.ProfessorRepository
	question   *repository.QuestionRepository
	exam       *repository.ExamRepository
	examResult *repository.ExamResultRepository
	examReport *repository.ExamReportRepository
	statistics *repository.StatisticsRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	professor  *service.ProfessorService
	question   *service.QuestionService
	exam       *service.ExamService
	session    *service.ExamSessionService
	report     *service.ReportService
	statistics *service.StatisticsService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	professor  *controller.ProfessorController
	question   *controller.QuestionController
	exam       *controller.ExamController
	session    *controller.ExamSessionController
	report     *controller.ReportController
	statistics *controller.StatisticsController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a reloaded configuration and notifies subscribers.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		professor:  repository.NewProfessorRepository(db),
		question:   repository.NewQuestionRepository(db),
		exam:       repository.NewExamRepository(db),
		examResult: repository.NewExamResultRepository(db),
		examReport: repository.NewExamReportRepository(db),
		statistics: repository.NewStatisticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.professor = service.NewProfessorService(repos.professor, repos.question)
	s.question = service.NewQuestionService(repos.question, repos.professor)
	s.exam = service.NewExamService(repos.exam, repos.question)
	s.session = service.NewExamSessionService(repos.examResult, repos.exam, repos.question)
	s.report = service.NewReportService(repos.examReport, repos.examResult, repos.professor)
	s.statistics = service.NewStatisticsService(repos.statistics, repos.examResult, repos.examReport, repos.user, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		user:       controller.NewUserController(s.user, s.auth),
		professor:  controller.NewProfessorController(s.professor),
		question:   controller.NewQuestionController(s.question),
		exam:       controller.NewExamController(s.exam),
		session:    controller.NewExamSessionController(s.session),
		report:     controller.NewReportController(s.report),
		statistics: controller.NewStatisticsController(s.statistics),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("exam-admin", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

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
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
