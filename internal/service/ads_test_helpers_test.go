package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate ad models failed: %v", err)
	}
	if err := db.AutoMigrate(&models.WPUser{}, &models.WPUserMeta{}, &models.WPPost{}); err != nil {
		t.Fatalf("migrate wordpress tables failed: %v", err)
	}
	return db
}

type adTestRepos struct {
	slots      *repository.GormAdSlotRepository
	creatives  *repository.GormAdCreativeRepository
	placements *repository.GormAdPlacementRepository
	events     *repository.GormAdEventRepository
	metrics    *repository.GormAdMetricRepository
}

func newAdTestRepos(db *gorm.DB) adTestRepos {
	return adTestRepos{
		slots:      repository.NewAdSlotRepository(db),
		creatives:  repository.NewAdCreativeRepository(db),
		placements: repository.NewAdPlacementRepository(db),
		events:     repository.NewAdEventRepository(db),
		metrics:    repository.NewAdMetricRepository(db),
	}
}

func createTestSlot(t *testing.T, db *gorm.DB, key string, enabled bool) *models.AdSlot {
	t.Helper()
	slot := &models.AdSlot{SlotKey: key, Name: key, Enabled: enabled}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("create slot failed: %v", err)
	}
	return slot
}

func createTestPlacement(t *testing.T, db *gorm.DB, slotID uint, name string, weight int, mutate func(*models.AdPlacement, *models.AdCreative)) *models.AdPlacement {
	t.Helper()
	html := "<div>" + name + "</div>"
	creative := &models.AdCreative{Name: name, Type: "html", HTML: &html, IsActive: true, Weight: 1}
	placement := &models.AdPlacement{SlotID: slotID, Weight: weight, IsActive: true}
	if mutate != nil {
		mutate(placement, creative)
	}
	if err := db.Create(creative).Error; err != nil {
		t.Fatalf("create creative failed: %v", err)
	}
	placement.CreativeID = creative.ID
	if err := db.Create(placement).Error; err != nil {
		t.Fatalf("create placement failed: %v", err)
	}
	return placement
}

func uintPtr(v uint) *uint {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}
