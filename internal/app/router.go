package app

import (
	"exam_admin_backend/docs"
	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/middleware"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// registerStudentRoutes mounts everything any authenticated user may call.
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// Exams open for taking
	rg.GET("/exams", c.exam.List)
	rg.GET("/exams/active", c.exam.ListActive)

	// Attempt lifecycle
	rg.POST("/exams/:id/start", c.session.Start)
	rg.GET("/exams/:id/session", c.session.GetSession)
	rg.POST("/results/:id/answers", c.session.Answer)
	rg.POST("/results/:id/submit", c.session.Submit)
	rg.GET("/results/latest", c.session.LatestResult)
	rg.GET("/results/my", c.session.MyResults)

	// Reports and personal statistics
	rg.POST("/results/:id/report", c.report.Generate)
	rg.GET("/results/:id/report", c.report.Get)
	rg.GET("/stats/my", c.statistics.MyStats)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.POST("/users", c.user.CreateUser)

		admin.POST("/professors", c.professor.Create)
		admin.GET("/professors", c.professor.List)
		admin.GET("/professors/:id", c.professor.Get)
		admin.PUT("/professors/:id", c.professor.Update)
		admin.DELETE("/professors/:id", c.professor.Delete)

		admin.POST("/questions", c.question.Create)
		admin.GET("/questions", c.question.List)
		admin.GET("/questions/:id", c.question.Get)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)

		admin.POST("/exams", c.exam.Create)
		admin.GET("/exams/:id", c.exam.Get)
		admin.PUT("/exams/:id/status", c.exam.UpdateStatus)
		admin.DELETE("/exams/:id", c.exam.Delete)

		admin.GET("/statistics", c.statistics.AdminStatistics)
		admin.GET("/students/:id/report", c.statistics.StudentReport)
	}
}
