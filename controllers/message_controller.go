package controllers

import (
	"strconv"

	"chat-admin/services"
	"chat-admin/utils"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	Service *services.MessageService
}

func NewMessageController(service *services.MessageService) *MessageController {
	return &MessageController{Service: service}
}

// FindPage 分页查询消息，支持按发送者 ID 和内容关键字过滤
func (ctl *MessageController) FindPage(c *gin.Context) {
	pageNum, err := strconv.Atoi(c.DefaultQuery("pageNum", "1"))
	if err != nil {
		utils.RespondError(c, "500", "页码必须是数字")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		utils.RespondError(c, "500", "每页数量必须是数字")
		return
	}

	var senderID *uint
	if raw := c.Query("senderId"); raw != "" && raw != "null" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondError(c, "500", "发送者ID必须是数字")
			return
		}
		value := uint(id)
		senderID = &value
	}

	content := c.Query("content")
	if content == "null" {
		content = ""
	}

	page, err := ctl.Service.Page(senderID, content, pageNum, pageSize)
	if err != nil {
		utils.RespondError(c, "500", "获取消息列表失败："+err.Error())
		return
	}
	utils.RespondSuccess(c, page, nil)
}
