package models

import (
	"testing"
)

func TestOpenDBKeepsSharedMemoryDatabaseWithDefaultPool(t *testing.T) {
	db, err := OpenDB("sqlite", "file:models_open_db?mode=memory&cache=shared", DBPoolConfig{}, false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	t.Cleanup(func() { _ = CloseDB(db) })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !db.Migrator().HasTable(&AdSlot{}) {
		t.Fatalf("ad slot table should survive after migration")
	}
	if err := db.Create(&AdSlot{SlotKey: "sidebar_top", Name: "Sidebar", Enabled: true}).Error; err != nil {
		t.Fatalf("create slot failed: %v", err)
	}
	var count int64
	if err := db.Model(&AdSlot{}).Count(&count).Error; err != nil {
		t.Fatalf("count slots failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("slot count want 1 got %d", count)
	}
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenDB("oracle", "", DBPoolConfig{}, false); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}
