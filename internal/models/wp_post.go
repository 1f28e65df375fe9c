package models

import "time"

// WPPost WordPress 文章表，这里只读取计数需要的列
type WPPost struct {
	ID         uint      `gorm:"column:ID;primarykey" json:"id"`
	PostAuthor uint      `gorm:"column:post_author" json:"post_author"`
	PostDate   time.Time `gorm:"column:post_date" json:"post_date"`
	PostTitle  string    `gorm:"column:post_title" json:"post_title"`
	PostStatus string    `gorm:"column:post_status" json:"post_status"`
	PostName   string    `gorm:"column:post_name" json:"post_name"`
	PostType   string    `gorm:"column:post_type" json:"post_type"`
}

// TableName 指定表名
func (WPPost) TableName() string {
	return "wp_posts"
}
