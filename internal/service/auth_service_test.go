package service

import (
	"errors"
	"testing"

	"github.com/minikart-next/minikart/internal/config"
	"github.com/minikart-next/minikart/internal/constants"
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:authsvc?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate user failed: %v", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		t.Fatalf("truncate users failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 6
	return NewAuthService(cfg, repository.NewUserRepository(db))
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "secret123",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		Answer:   "Cricket",
		Location: "Bengaluru",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(registerInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.Role != constants.RoleUser {
		t.Fatalf("self-registration must yield the user role, got %q", user.Role)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	logged, token, _, err := svc.Login("asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result: id=%d token=%q", logged.ID, token)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterRejectsRoleEscalation(t *testing.T) {
	svc := newAuthService(t)

	input := registerInput()
	input.Role = constants.RoleAdmin
	user, err := svc.Register(input)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != constants.RoleUser {
		t.Fatalf("requested admin role must be ignored, got %q", user.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register(registerInput()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(registerInput()); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("got %v, want ErrEmailExists", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)

	missing := registerInput()
	missing.Phone = " "
	if _, err := svc.Register(missing); !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}

	badEmail := registerInput()
	badEmail.Email = "not-an-email"
	if _, err := svc.Register(badEmail); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("got %v, want ErrInvalidEmail", err)
	}

	weak := registerInput()
	weak.Password = "abc"
	if _, err := svc.Register(weak); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("got %v, want ErrWeakPassword", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.Register(registerInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, _, err := svc.Login("asha@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestForgotPassword(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.Register(registerInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// case-insensitive answer match
	if err := svc.ForgotPassword("asha@example.com", "cricket", "newsecret1"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if _, _, _, err := svc.Login("asha@example.com", "newsecret1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	if err := svc.ForgotPassword("asha@example.com", "football", "another1"); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("got %v, want ErrInvalidAnswer", err)
	}
	if err := svc.ForgotPassword("nobody@example.com", "cricket", "another1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestLogFederatedIdentity(t *testing.T) {
	svc := newAuthService(t)

	if err := svc.LogFederatedIdentity(FederatedIdentity{Provider: "google", Subject: "sub-1"}); err != nil {
		t.Fatalf("LogFederatedIdentity failed: %v", err)
	}
	if err := svc.LogFederatedIdentity(FederatedIdentity{Provider: "google"}); !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
}
