package models

import "time"

// AdCreative 广告素材
type AdCreative struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(190);not null" json:"name"`
	Type        string     `gorm:"type:varchar(10);not null" json:"type"`                // html / image
	HTML        *string    `gorm:"column:html;type:text" json:"html"`                    // type=html 时必填
	ImageURL    *string    `gorm:"column:image_url;type:varchar(1000)" json:"image_url"` // type=image 时必填
	ClickURL    *string    `gorm:"column:click_url;type:varchar(1000)" json:"click_url"`
	TargetBlank bool       `gorm:"column:target_blank;not null" json:"target_blank"`
	Weight      int        `gorm:"not null" json:"weight"` // 素材级权重，选取时不参与计算
	ActiveFrom  *time.Time `gorm:"column:active_from;index" json:"active_from"`
	ActiveTo    *time.Time `gorm:"column:active_to;index" json:"active_to"`
	IsActive    bool       `gorm:"column:is_active;not null;index" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (AdCreative) TableName() string {
	return "wp_ad_creatives"
}
