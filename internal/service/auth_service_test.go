package service

import (
	"errors"
	"testing"
	"time"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"

	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-1234"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		Role:     model.Student,
	}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "s3cret-pass" {
		t.Error("password stored in clear")
	}

	dup := &model.User{Name: "Other", Email: "ana@example.com", Password: "whatever1"}
	if err := svc.Register(dup); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("duplicate email: err = %v, want ErrEmailRegistered", err)
	}

	token, err := svc.Login("ana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := util.ParseJWT(token, "test-secret-test-secret-test-1234")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student {
		t.Errorf("claims = %+v, want user %d as student", claims, user.ID)
	}

	if _, err := svc.Login("ana@example.com", "wrong-pass"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := svc.Login("nobody@example.com", "s3cret-pass"); err == nil {
		t.Error("unknown email accepted")
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		Role:     model.Student,
	}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := db.Model(user).Update("disabled", true).Error; err != nil {
		t.Fatalf("disable: %v", err)
	}

	if _, err := svc.Login("ana@example.com", "s3cret-pass"); err == nil {
		t.Error("disabled account logged in")
	}
}
