package routes

import (
	"chat-admin/controllers"
	"chat-admin/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(userCtl *controllers.UserController, messageCtl *controllers.MessageController) *gin.Engine {

	r := gin.Default()
	// 配置跨域中间件
	corsConfig := cors.Config{
		AllowOrigins:     []string{"*"},                                       // 允许的域名，可以是前端地址
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, // 允许的 HTTP 方法
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"}, // 允许的请求头
		AllowCredentials: true,                                                // 是否允许发送 cookies
	}

	// 使用 CORS 中间件
	r.Use(cors.New(corsConfig))
	r.Use(middlewares.RequestID())

	user := r.Group("/user")
	{
		user.POST("", userCtl.Save)
		user.GET("", userCtl.FindAll)
		user.GET("/page", userCtl.FindPage)
		user.POST("/del/batch", userCtl.DeleteBatch)
		user.POST("/import", userCtl.Import)
		user.GET("/export", userCtl.Export)
		user.GET("/today", userCtl.Today)
		user.GET("/growth", userCtl.Growth)
		user.GET("/region", userCtl.Region)
		user.GET("/test", userCtl.Test)
		user.GET("/check/:username", userCtl.Check)
		user.POST("/update", userCtl.Update)
		user.DELETE("/:id", userCtl.Delete)
	}

	r.GET("/message/page", messageCtl.FindPage)

	return r
}
