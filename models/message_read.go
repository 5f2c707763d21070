package models

import "time"

// MessageRead 消息已读记录
type MessageRead struct {
	MessageID uint      `gorm:"primaryKey" json:"message_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	ReadAt    time.Time `gorm:"autoCreateTime" json:"read_at"` // 阅读时间
}

func (MessageRead) TableName() string {
	return "message_reads"
}
