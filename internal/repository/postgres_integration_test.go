//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/newsportal/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := models.AdModels()
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresImpressionDedupAndDailyUpsert(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()
	now := time.Now().UTC()
	ymd := models.DateOf(now)

	events := NewAdEventRepository(db)
	metrics := NewAdMetricRepository(db)

	first := &models.AdImpression{SlotID: 1, YMD: ymd, TS: now, IP: "1.2.3.4", Fingerprint: "pg-fp-1"}
	inserted, err := events.InsertImpression(ctx, first)
	if err != nil || !inserted {
		t.Fatalf("first insert want inserted, got inserted=%v err=%v", inserted, err)
	}
	dup := &models.AdImpression{SlotID: 1, YMD: ymd, TS: now, IP: "1.2.3.4", Fingerprint: "pg-fp-1"}
	inserted, err = events.InsertImpression(ctx, dup)
	if err != nil {
		t.Fatalf("duplicate insert failed: %v", err)
	}
	if inserted {
		t.Fatalf("duplicate fingerprint should be ignored")
	}

	for i := 0; i < 3; i++ {
		delta := AdMetricDelta{YMD: ymd, SlotID: 1, CreativeID: 9, Impressions: 1}
		if i == 2 {
			delta.Clicks = 1
		}
		if err := metrics.IncrementDaily(ctx, delta, now); err != nil {
			t.Fatalf("increment failed: %v", err)
		}
	}
	row, err := metrics.GetDaily(ctx, ymd, 1, 9)
	if err != nil {
		t.Fatalf("get daily failed: %v", err)
	}
	if row == nil || row.Impressions != 3 || row.Clicks != 1 {
		t.Fatalf("unexpected daily row: %+v", row)
	}
}

func TestPostgresSlotSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()

	if err := db.Create(&models.AdSlot{SlotKey: "HOME_HERO", Name: "Home Hero", Enabled: true}).Error; err != nil {
		t.Fatalf("create slot failed: %v", err)
	}
	repo := NewAdSlotRepository(db)
	rows, total, err := repo.List(ctx, AdSlotListFilter{Page: 1, PageSize: 20, Search: "home_h"})
	if err != nil {
		t.Fatalf("list slots failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected one matching slot, got total=%d rows=%d", total, len(rows))
	}
}
