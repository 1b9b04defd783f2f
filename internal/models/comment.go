package models

import (
	"time"
)

// Comment 评论表
// GameID 和 UserID 是软引用，存储层不做参照完整性校验
type Comment struct {
	BaseModel
	GameID uint      `gorm:"not null;index" json:"gameId"`
	UserID uint      `gorm:"not null" json:"userId"`
	Text   string    `gorm:"size:2000;not null" json:"text"`
	Date   time.Time `gorm:"index" json:"date"`
}

// TableName 指定Comment表名
func (Comment) TableName() string {
	return "comments"
}
