package models

// User 用户表
// Points 和 Medals 是展示用的附加属性，本服务不负责计算
type User struct {
	BaseModel
	FullName string     `gorm:"size:100;not null" json:"fullName"`
	Email    string     `gorm:"size:100;not null" json:"email"`
	Points   int        `gorm:"default:0" json:"points"`
	Medals   StringList `gorm:"type:json" json:"medals"`
}

// TableName 指定User表名
func (User) TableName() string {
	return "users"
}
