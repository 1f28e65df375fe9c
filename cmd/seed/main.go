package main

import (
	"time"

	"github.com/newsportal/internal/app"
	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/logger"
	"github.com/newsportal/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedPlacement struct {
	SlotKey  string
	SlotName string
	Creative models.AdCreative
	Weight   int
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	cfg.Database.AutoMigrate = true
	db, err := app.OpenDatabase(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to open database: %v", err)
	}
	defer models.CloseDB(db)

	clickURL := "https://example.com/landing"
	heroHTML := `<a href="https://example.com/landing"><img src="https://cdn.example.com/hero.jpg" alt="hero"></a>`
	sideImage := "https://cdn.example.com/side-300x250.png"
	seeds := []seedPlacement{
		{
			SlotKey:  "home_hero",
			SlotName: "首页横幅",
			Creative: models.AdCreative{Name: "Hero HTML", Type: constants.CreativeTypeHTML, HTML: &heroHTML, ClickURL: &clickURL, TargetBlank: true},
			Weight:   3,
		},
		{
			SlotKey:  "article_sidebar",
			SlotName: "文章侧栏",
			Creative: models.AdCreative{Name: "Sidebar 300x250", Type: constants.CreativeTypeImage, ImageURL: &sideImage, ClickURL: &clickURL},
			Weight:   1,
		},
	}

	for _, item := range seeds {
		if err := seedOne(db, item); err != nil {
			stdLog.Printf("Failed to seed slot %s: %v", item.SlotKey, err)
			continue
		}
		stdLog.Printf("Seeded slot: %s", item.SlotKey)
	}
}

// seedOne 广告位已存在时跳过
func seedOne(db *gorm.DB, item seedPlacement) error {
	return db.Transaction(func(tx *gorm.DB) error {
		slot := models.AdSlot{SlotKey: item.SlotKey, Name: item.SlotName, Enabled: true}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&slot)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		creative := item.Creative
		creative.Weight = 1
		creative.IsActive = true
		now := time.Now()
		creative.ActiveFrom = &now
		if err := tx.Create(&creative).Error; err != nil {
			return err
		}
		placement := models.AdPlacement{SlotID: slot.ID, CreativeID: creative.ID, Weight: item.Weight, IsActive: true}
		return tx.Create(&placement).Error
	})
}
