package main

import (
	"chat-admin/config"
	"chat-admin/controllers"
	"chat-admin/models"
	"chat-admin/routes"
	"chat-admin/services"

	"github.com/sirupsen/logrus"
)

func main() {
	// 初始化数据库
	config.InitDB()
	// 自动迁移
	models.Migrate()

	userService := services.NewUserService(config.DB)
	messageService := services.NewMessageService(config.DB)

	// 注册路由
	r := routes.RegisterRoutes(
		controllers.NewUserController(userService),
		controllers.NewMessageController(messageService),
	)

	// 启动服务
	addr := config.ServerAddr()
	logrus.Infof("管理后台启动于 %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
