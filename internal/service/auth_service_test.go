package service

import (
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Quillback/config"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/repository"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) AuthService {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenExpiry = time.Hour
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewQuestionnaireRepository(db),
		repository.NewResponseRepository(db),
		cfg,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(dto.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     model.RoleCreator,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != model.RoleCreator || !user.IsActive {
		t.Errorf("unexpected registered user: %+v", user)
	}

	resp, err := svc.Login(dto.LoginRequest{Username: "ada", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}

	parsed, err := svc.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("token did not parse back: %v", err)
	}
	if parsed.Username != "ada" {
		t.Errorf("parsed user = %q, want ada", parsed.Username)
	}
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(dto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Errorf("Role = %q, want user", user.Role)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	base := dto.RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "correct horse"}
	if _, err := svc.Register(base); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Register(dto.RegisterRequest{Username: "ada", Email: "other@example.com", Password: "correct horse"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("duplicate username: expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["username"]; !ok {
		t.Errorf("validation error missing username field: %v", verr.Fields)
	}

	_, err = svc.Register(dto.RegisterRequest{Username: "ada2", Email: "ada@example.com", Password: "correct horse"})
	if !errors.As(err, &verr) {
		t.Fatalf("duplicate email: expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Errorf("validation error missing email field: %v", verr.Fields)
	}
}

func TestLoginFailures(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register(dto.RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(dto.LoginRequest{Username: "nobody", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(dto.LoginRequest{Username: "ada", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}

	if err := db.Model(&model.User{}).Where("username = ?", "ada").Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}
	if _, err := svc.Login(dto.LoginRequest{Username: "ada", Password: "correct horse"}); !errors.Is(err, ErrAccountDeactivated) {
		t.Errorf("deactivated user: got %v, want ErrAccountDeactivated", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	if _, err := svc.ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage token parsed without error")
	}
}
