package repository

import (
	"time"

	"gorm.io/gorm"
)

// paginate 分页作用域，pageSize<=0 时不分页
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}

// activeWindow 时间窗口作用域，空边界视为不限
func activeWindow(table string, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("("+table+".active_from IS NULL OR "+table+".active_from <= ?)", now).
			Where("("+table+".active_to IS NULL OR "+table+".active_to >= ?)", now)
	}
}
