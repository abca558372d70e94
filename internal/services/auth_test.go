package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/studydeck-backend/internal/logger"
	"github.com/yungbote/studydeck-backend/internal/repos"
	"github.com/yungbote/studydeck-backend/internal/requestdata"
	"github.com/yungbote/studydeck-backend/internal/types"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&types.User{}, &types.UserToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	userRepo := repos.NewUserRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	return NewAuthService(db, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestAuthRegisterLoginToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "Student@Example.com ", "longenough", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "student@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "longenough" {
		t.Fatalf("password stored in plain text")
	}

	access, refresh, err := svc.LoginUser(ctx, "student@example.com", "longenough")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens, got %q %q", access, refresh)
	}

	authedCtx, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("token did not carry user id: %+v", rd)
	}
}

func TestAuthRegisterRejectsBadInput(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	if _, err := svc.RegisterUser(ctx, "not-an-email", "longenough", "", ""); err == nil {
		t.Fatalf("expected invalid email to fail")
	}
	if _, err := svc.RegisterUser(ctx, "a@b.com", "short", "", ""); err == nil {
		t.Fatalf("expected short password to fail")
	}
	if _, err := svc.RegisterUser(ctx, "a@b.com", "longenough", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.RegisterUser(ctx, "a@b.com", "longenough", "", ""); err == nil {
		t.Fatalf("expected duplicate email to fail")
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	if _, err := svc.RegisterUser(ctx, "a@b.com", "longenough", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.LoginUser(ctx, "a@b.com", "wrongpassword"); err == nil {
		t.Fatalf("expected wrong password to fail")
	}
	if _, _, err := svc.LoginUser(ctx, "missing@b.com", "longenough"); err == nil {
		t.Fatalf("expected unknown email to fail")
	}
}

func TestAuthRefreshRotates(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	if _, err := svc.RegisterUser(ctx, "a@b.com", "longenough", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, refresh, err := svc.LoginUser(ctx, "a@b.com", "longenough")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	access2, refresh2, err := svc.RefreshUser(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if access2 == "" || refresh2 == "" || refresh2 == refresh {
		t.Fatalf("expected rotated tokens, got %q %q", access2, refresh2)
	}
	if _, _, err := svc.RefreshUser(ctx, refresh); err == nil {
		t.Fatalf("expected old refresh token to be revoked")
	}
	if _, _, err := svc.RefreshUser(ctx, uuid.New().String()); err == nil {
		t.Fatalf("expected unknown refresh token to fail")
	}
}

func TestAuthLogoutRevokesTokens(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	user, err := svc.RegisterUser(ctx, "a@b.com", "longenough", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, refresh, err := svc.LoginUser(ctx, "a@b.com", "longenough")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	authedCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: user.ID})
	if err := svc.LogoutUser(authedCtx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, _, err := svc.RefreshUser(ctx, refresh); err == nil {
		t.Fatalf("expected refresh after logout to fail")
	}
}

func TestAuthRejectsForgedToken(t *testing.T) {
	svc := newTestAuthService(t)
	if _, err := svc.SetContextFromToken(context.Background(), "not.a.token"); err == nil {
		t.Fatalf("expected bogus token to fail")
	}
}
