package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/middleware"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newAuthRouter wires the real registration and login handlers in front of
// an admin-gated group, the way the app router does.
func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-1234"
	cfg.JWT.ExpireTime = time.Hour

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo)
	authController := NewAuthController(authService, userService)
	userController := NewUserController(userService, authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.POST("/register", authController.Register)
	api.POST("/login", authController.Login)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	admin.POST("/users", userController.CreateUser)
	admin.GET("/statistics", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, db
}

func postJSON(t *testing.T, router *gin.Engine, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := postJSON(t, router, "/api/login", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Data.Token
}

// Self-registration takes the student role no matter what the caller puts
// in the payload; a smuggled "role":"admin" must not open the admin routes.
func TestRegisterNeverGrantsAdmin(t *testing.T) {
	router, db := newAuthRouter(t)

	w := postJSON(t, router, "/api/register", "", gin.H{
		"name":     "Mallory",
		"email":    "mallory@example.com",
		"password": "password123",
		"role":     "admin",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body = %s", w.Code, w.Body.String())
	}

	var user model.User
	if err := db.Where("email = ?", "mallory@example.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Role != model.Student {
		t.Errorf("role = %q, want %q", user.Role, model.Student)
	}

	token := loginToken(t, router, "mallory@example.com", "password123")

	getW := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(getW, req)
	if getW.Code != http.StatusForbidden {
		t.Errorf("admin route with self-registered token: status = %d, want 403", getW.Code)
	}
}

func TestAdminCreatesAdminUser(t *testing.T) {
	router, db := newAuthRouter(t)

	// Bootstrap admin, the role registration cannot produce.
	seed := &model.User{Name: "Root", Email: "root@example.com", Password: "password123", Role: model.Admin}
	if err := service.NewAuthService(repository.NewUserRepository(db), nil).Register(seed); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	token := loginToken(t, router, "root@example.com", "password123")

	w := postJSON(t, router, "/api/admin/users", token, gin.H{
		"name":     "Second Admin",
		"email":    "second@example.com",
		"password": "password123",
		"role":     "admin",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create user: status = %d, body = %s", w.Code, w.Body.String())
	}

	var created model.User
	if err := db.Where("email = ?", "second@example.com").First(&created).Error; err != nil {
		t.Fatalf("load created user: %v", err)
	}
	if created.Role != model.Admin {
		t.Errorf("role = %q, want %q", created.Role, model.Admin)
	}

	// Without a token the same route stays closed.
	anon := postJSON(t, router, "/api/admin/users", "", gin.H{
		"name":     "Nobody",
		"email":    "nobody@example.com",
		"password": "password123",
		"role":     "admin",
	})
	if anon.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create user: status = %d, want 401", anon.Code)
	}
}
