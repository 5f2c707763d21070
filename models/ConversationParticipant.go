package models

import "time"

type ConversationParticipant struct {
	ConversationID uint      `gorm:"primaryKey" json:"conversation_id"`
	UserID         uint      `gorm:"primaryKey" json:"user_id"`       // 用户 ID
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"joined_at"` // 用户加入会话的时间
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}
