package models

import "time"

// PostViewLog 文章浏览原始日志，fingerprint 唯一用于去重
type PostViewLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PostID      uint      `gorm:"column:post_id;not null;index" json:"post_id"`
	YMD         Date      `gorm:"column:ymd;type:date;not null;index" json:"ymd"`
	UID         *string   `gorm:"column:uid;type:varchar(64)" json:"uid"`
	SID         *string   `gorm:"column:sid;type:varchar(64)" json:"sid"`
	IP          string    `gorm:"column:ip;type:varchar(45)" json:"ip"`
	UserAgent   string    `gorm:"column:user_agent;type:varchar(255)" json:"user_agent"`
	TS          time.Time `gorm:"column:ts;not null" json:"ts"`
	Fingerprint string    `gorm:"column:fingerprint;type:char(40);not null;uniqueIndex" json:"fingerprint"`
}

// TableName 指定表名
func (PostViewLog) TableName() string {
	return "wp_post_view_log"
}

// PostViewDaily 文章按天浏览数
type PostViewDaily struct {
	PostID    uint      `gorm:"column:post_id;primaryKey;autoIncrement:false" json:"post_id"`
	YMD       Date      `gorm:"column:ymd;type:date;primaryKey;autoIncrement:false" json:"ymd"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (PostViewDaily) TableName() string {
	return "wp_post_views_daily"
}
