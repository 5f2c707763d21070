package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string     `json:"username" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"` // 不对外输出
	Avatar    string     `json:"avatar"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	IsOnline  int        `json:"is_online" gorm:"default:0"` // 0 离线 1 在线
	LastSeen  *time.Time `json:"last_seen" gorm:"default:NULL"` // 允许 NULL
	CreatedAt time.Time  `json:"created_at"`
	Gender    string     `json:"gender"`
	Age       int        `json:"age"`
	Nickname  string     `json:"nickname"`
	Address   string     `json:"address"`
}

func (User) TableName() string {
	return "users"
}
