package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-1234"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func testRouter(cfg *config.Config, role model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/role", AuthMiddleware(cfg), RoleMiddleware(role), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func tokenFor(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	user := &model.User{Role: role, Email: "u@example.com"}
	user.ID = 1
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg, model.Admin)

	// No token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	// Garbage token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}

	// Valid bearer header.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Student))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", w.Code)
	}

	// Token in query string also works.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected?token="+tokenFor(t, cfg, model.Student), nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("query token: status = %d, want 200", w.Code)
	}
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()
	router := testRouter(cfg, model.Admin)

	// Students are rejected from admin routes.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/role", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Student))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("student on admin route: status = %d, want 403", w.Code)
	}

	// Admins pass.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/role", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Admin))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want 200", w.Code)
	}
}
