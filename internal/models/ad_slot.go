package models

import "time"

// AdSlot 广告位（页面上的投放位置）
type AdSlot struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                   // 主键
	SlotKey   string    `gorm:"column:slot_key;type:varchar(100);not null;uniqueIndex" json:"slot_key"` // 渲染代码引用的稳定标识
	Name      string    `gorm:"type:varchar(190);not null" json:"name"`                                 // 后台名称
	Enabled   bool      `gorm:"not null;index" json:"enabled"`                                          // 关闭后不参与选取
	MaxAds    *int      `gorm:"column:max_ads" json:"max_ads"`                                          // 最多展示数量（可空）
	CreatedAt time.Time `json:"created_at"`                                                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                             // 更新时间
}

// TableName 指定表名
func (AdSlot) TableName() string {
	return "wp_ad_slots"
}
