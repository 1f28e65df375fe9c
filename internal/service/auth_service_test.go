package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"

	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	cfg := &config.Config{
		JWT:      config.JWTConfig{SecretKey: "test-secret", ExpireHours: 2},
		Database: config.DatabaseConfig{TablePrefix: "wp_"},
	}
	return NewAuthService(cfg, repository.NewUserRepository(db))
}

func createTestWPUser(t *testing.T, db *gorm.DB, login, email, password, capabilities string) *models.WPUser {
	t.Helper()
	hash, err := HashWordPressPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.WPUser{
		UserLogin:      login,
		UserPass:       hash,
		UserNicename:   login,
		UserEmail:      email,
		UserRegistered: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DisplayName:    login,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create wp user failed: %v", err)
	}
	if capabilities != "" {
		meta := &models.WPUserMeta{UserID: user.ID, MetaKey: "wp_capabilities", MetaValue: capabilities}
		if err := db.Create(meta).Error; err != nil {
			t.Fatalf("create usermeta failed: %v", err)
		}
	}
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestAuthService(t, db)
	user := createTestWPUser(t, db, "editor", "editor@example.com", "s3cret!", `a:1:{s:13:"administrator";b:1;}`)
	ctx := context.Background()

	got, token, expiresAt, err := svc.Login(ctx, "editor", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != user.ID || token == "" || expiresAt.IsZero() {
		t.Fatalf("unexpected login result user=%+v token=%q expires=%v", got, token, expiresAt)
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.UserLogin != "editor" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, _, _, err := svc.Login(ctx, "editor@example.com", "s3cret!"); err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "editor", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "nobody", "s3cret!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, " ", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestAuthServiceParseJWTRejectsTampering(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestAuthService(t, db)
	user := createTestWPUser(t, db, "admin", "admin@example.com", "pw", "")

	token, _, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	other := newTestAuthService(t, db)
	other.cfg.JWT.SecretKey = "another-secret"
	if _, err := other.ParseJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}

	expired := newTestAuthService(t, db).WithClock(func() time.Time { return time.Now().Add(3 * time.Hour) })
	if _, err := expired.ParseJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), token); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if err := db.Delete(&models.WPUser{}, user.ID).Error; err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for removed user, got %v", err)
	}
}

func TestAuthServiceIsAdmin(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTestAuthService(t, db)
	admin := createTestWPUser(t, db, "admin", "admin@example.com", "pw", `a:1:{s:13:"administrator";b:1;}`)
	revoked := createTestWPUser(t, db, "revoked", "revoked@example.com", "pw", `a:2:{s:13:"administrator";b:0;s:6:"editor";b:1;}`)
	plain := createTestWPUser(t, db, "reader", "reader@example.com", "pw", "")
	ctx := context.Background()

	cases := []struct {
		userID uint
		want   bool
	}{
		{userID: admin.ID, want: true},
		{userID: revoked.ID, want: false},
		{userID: plain.ID, want: false},
		{userID: 9999, want: false},
		{userID: 0, want: false},
	}
	for _, tc := range cases {
		got, err := svc.IsAdmin(ctx, tc.userID)
		if err != nil {
			t.Fatalf("IsAdmin(%d) failed: %v", tc.userID, err)
		}
		if got != tc.want {
			t.Fatalf("IsAdmin(%d) = %v, want %v", tc.userID, got, tc.want)
		}
	}

	roles, err := svc.LoadRoles(ctx, revoked.ID)
	if err != nil {
		t.Fatalf("load roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "editor" {
		t.Fatalf("unexpected roles %v", roles)
	}
}
