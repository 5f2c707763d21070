package models

import (
	"chat-admin/config"

	"github.com/sirupsen/logrus"
)

// Migrate 自动迁移所有表结构
func Migrate() {
	err := config.DB.AutoMigrate(
		&User{},
		&Conversation{},
		&ConversationParticipant{},
		&Message{},
		&MessageRead{},
		&Friendship{},
	)
	if err != nil {
		logrus.Fatalf("数据库迁移失败: %v", err)
	}
}
