package models

import (
	"time"
)

// BaseModel 模型公共字段
// 主键使用 AUTOINCREMENT，ID严格递增且删除后不复用
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
