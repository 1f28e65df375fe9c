package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/provider"
	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := models.OpenDB("sqlite", dsn, models.DBPoolConfig{}, false)
	if err != nil {
		t.Fatalf("open db failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.AutoMigrate(&models.WPUser{}, &models.WPUserMeta{}, &models.WPPost{}); err != nil {
		t.Fatalf("migrate wordpress tables failed: %v", err)
	}
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "debug"},
		JWT:      config.JWTConfig{SecretKey: "router-secret", ExpireHours: 1},
		Database: config.DatabaseConfig{TablePrefix: "wp_"},
		Ads:      config.AdsConfig{HTMLPolicy: "raw", RawEventRetentionDays: 90},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics", Namespace: "np"},
	}
	c, err := provider.NewContainer(cfg, db)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return SetupRouter(cfg, c), db
}

func createRouterUser(t *testing.T, db *gorm.DB, login, password, capabilities string) {
	t.Helper()
	hash, err := service.HashWordPressPassword(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	user := &models.WPUser{UserLogin: login, UserPass: hash, UserEmail: login + "@example.com", UserRegistered: time.Now()}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	meta := &models.WPUserMeta{UserID: user.ID, MetaKey: "wp_capabilities", MetaValue: capabilities}
	if err := db.Create(meta).Error; err != nil {
		t.Fatalf("create meta failed: %v", err)
	}
}

func loginToken(t *testing.T, r *gin.Engine, login, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": login, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login failed: %v", err)
	}
	return resp.Data.Token
}

func authedGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterAdminAccessByRole(t *testing.T) {
	r, db := setupRouterTest(t)
	createRouterUser(t, db, "boss", "pw-boss", `a:1:{s:13:"administrator";b:1;}`)
	createRouterUser(t, db, "writer", "pw-writer", `a:1:{s:6:"editor";b:1;}`)

	adminToken := loginToken(t, r, "boss", "pw-boss")
	editorToken := loginToken(t, r, "writer", "pw-writer")

	paths := []string{
		"/api/v1/admin/ads/slots",
		"/api/v1/ads/metrics/summary?from=2026-01-01&to=2026-01-31",
		"/api/v1/ads/metrics/top?from=2026-01-01&to=2026-01-31",
	}
	for _, path := range paths {
		if w := authedGet(r, path, ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token want 401 got %d", path, w.Code)
		}
		if w := authedGet(r, path, editorToken); w.Code != http.StatusForbidden {
			t.Fatalf("%s as editor want 403 got %d", path, w.Code)
		}
		if w := authedGet(r, path, adminToken); w.Code != http.StatusOK {
			t.Fatalf("%s as admin want 200 got %d %s", path, w.Code, w.Body.String())
		}
	}
}

func TestRouterPublicEndpointsAreNoStore(t *testing.T) {
	r, _ := setupRouterTest(t)

	w := authedGet(r, "/api/v1/pick?slotKey=missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("pick of missing slot want 404 got %d", w.Code)
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("pick response must be no-store")
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("request id header missing")
	}

	w = authedGet(r, "/api/v1/placements/active?slotKey=missing", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "no-active") {
		t.Fatalf("placements/active want 200 no-active got %d %s", w.Code, w.Body.String())
	}

	w = authedGet(r, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "np_ads_picks_total") {
		t.Fatalf("metrics endpoint should expose pick counter, got %d", w.Code)
	}
	w = authedGet(r, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health want 200 got %d", w.Code)
	}
}
