package models

import "time"

// WPUser WordPress 用户表（只读）
type WPUser struct {
	ID             uint      `gorm:"column:ID;primarykey" json:"id"`
	UserLogin      string    `gorm:"column:user_login" json:"user_login"`
	UserPass       string    `gorm:"column:user_pass" json:"-"`
	UserNicename   string    `gorm:"column:user_nicename" json:"user_nicename"`
	UserEmail      string    `gorm:"column:user_email" json:"user_email"`
	UserRegistered time.Time `gorm:"column:user_registered" json:"user_registered"`
	UserStatus     int       `gorm:"column:user_status" json:"-"`
	DisplayName    string    `gorm:"column:display_name" json:"display_name"`
}

// TableName 指定表名
func (WPUser) TableName() string {
	return "wp_users"
}

// WPUserMeta WordPress 用户元数据表
type WPUserMeta struct {
	UmetaID   uint   `gorm:"column:umeta_id;primarykey" json:"umeta_id"`
	UserID    uint   `gorm:"column:user_id;index" json:"user_id"`
	MetaKey   string `gorm:"column:meta_key;type:varchar(255);index" json:"meta_key"`
	MetaValue string `gorm:"column:meta_value;type:longtext" json:"meta_value"`
}

// TableName 指定表名
func (WPUserMeta) TableName() string {
	return "wp_usermeta"
}
