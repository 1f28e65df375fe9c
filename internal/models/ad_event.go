package models

import "time"

// AdImpression 曝光原始日志（只追加）
type AdImpression struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SlotID      uint      `gorm:"column:slot_id;not null;index" json:"slot_id"`
	PlacementID *uint     `gorm:"column:placement_id" json:"placement_id"`
	CreativeID  *uint     `gorm:"column:creative_id" json:"creative_id"`
	YMD         Date      `gorm:"column:ymd;type:date;not null;index" json:"ymd"`
	UserAgent   string    `gorm:"column:user_agent;type:varchar(255)" json:"user_agent"`
	TS          time.Time `gorm:"column:ts;not null" json:"ts"`
	UID         *string   `gorm:"column:uid;type:varchar(64)" json:"uid"`
	SID         *string   `gorm:"column:sid;type:varchar(64)" json:"sid"`
	IP          string    `gorm:"column:ip;type:varchar(45)" json:"ip"`
	VisMS       *int      `gorm:"column:vis_ms" json:"vis_ms"` // 可见时长（毫秒）
	Fingerprint string    `gorm:"column:fingerprint;type:char(40);not null;uniqueIndex" json:"fingerprint"`
}

// TableName 指定表名
func (AdImpression) TableName() string {
	return "wp_ad_impressions"
}

// AdClick 点击原始日志（只追加）
type AdClick struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SlotID      uint      `gorm:"column:slot_id;not null;index" json:"slot_id"`
	PlacementID *uint     `gorm:"column:placement_id" json:"placement_id"`
	CreativeID  *uint     `gorm:"column:creative_id" json:"creative_id"`
	YMD         Date      `gorm:"column:ymd;type:date;not null;index" json:"ymd"`
	UserAgent   string    `gorm:"column:user_agent;type:varchar(255)" json:"user_agent"`
	TS          time.Time `gorm:"column:ts;not null" json:"ts"`
	UID         *string   `gorm:"column:uid;type:varchar(64)" json:"uid"`
	SID         *string   `gorm:"column:sid;type:varchar(64)" json:"sid"`
	IP          string    `gorm:"column:ip;type:varchar(45)" json:"ip"`
	Fingerprint string    `gorm:"column:fingerprint;type:char(40);not null;uniqueIndex" json:"fingerprint"`
}

// TableName 指定表名
func (AdClick) TableName() string {
	return "wp_ad_clicks"
}
