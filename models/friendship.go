package models

import "time"

// Friendship 好友关系
type Friendship struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	FriendID  uint      `gorm:"index" json:"friend_id"`
	Status    string    `gorm:"type:varchar(10);default:'accepted'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}
