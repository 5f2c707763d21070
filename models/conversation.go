package models

import (
	"time"
)

// Conversation 会话模型
type Conversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `json:"name"`
	Type      string    `gorm:"type:varchar(10);index;default:'private'" json:"type"` // "private" or "group"
	OwnerID   uint      `gorm:"index" json:"owner_id"`                                // 会话创建者
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Conversation) TableName() string {
	return "conversations"
}
