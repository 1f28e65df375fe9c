package models

import "time"

// AdPlacement 广告位与素材的绑定关系，选取引擎以此为单位
type AdPlacement struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	SlotID     uint       `gorm:"column:slot_id;not null;index:idx_ad_placement_slot" json:"slot_id"`
	CreativeID uint       `gorm:"column:creative_id;not null;index" json:"creative_id"`
	Weight     int        `gorm:"not null" json:"weight"` // 随机选取权重（>= 0）
	ActiveFrom *time.Time `gorm:"column:active_from" json:"active_from"`
	ActiveTo   *time.Time `gorm:"column:active_to" json:"active_to"`
	IsActive   bool       `gorm:"column:is_active;not null;index:idx_ad_placement_slot" json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Slot     *AdSlot     `gorm:"foreignKey:SlotID;constraint:false" json:"slot,omitempty"`
	Creative *AdCreative `gorm:"foreignKey:CreativeID;constraint:false" json:"creative,omitempty"`
}

// TableName 指定表名
func (AdPlacement) TableName() string {
	return "wp_ad_placements"
}
