package models

import "time"

// AdMetricDaily 广告按天聚合计数（ymd 为 UTC+6 日期）
// 只允许累加更新，不做覆盖写。
type AdMetricDaily struct {
	YMD         Date      `gorm:"column:ymd;type:date;primaryKey;autoIncrement:false" json:"ymd"`
	SlotID      uint      `gorm:"column:slot_id;primaryKey;autoIncrement:false" json:"slot_id"`
	CreativeID  uint      `gorm:"column:creative_id;primaryKey;autoIncrement:false" json:"creative_id"` // 无素材时为 0
	Impressions int64     `gorm:"not null;default:0" json:"impressions"`
	Clicks      int64     `gorm:"not null;default:0" json:"clicks"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (AdMetricDaily) TableName() string {
	return "wp_ad_metrics_daily"
}
