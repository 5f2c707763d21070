package models

import (
	"time"
)

// Message 消息模型
type Message struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint      `json:"conversation_id" gorm:"index"` // 所属会话 ID
	SenderID       uint      `json:"sender_id" gorm:"index"`       // 发送者 ID
	Content        string    `json:"content"`                      // 消息内容
	Type           string    `json:"type"`                         // 消息类型 (text, image 等)
	IsDeleted      int       `json:"is_deleted" gorm:"default:0"`  // 软删除标记
	CreatedAt      time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
