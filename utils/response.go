package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result 统一响应结构 {code, msg, data}
type Result struct {
	Code string      `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

func Success(data interface{}) Result {
	return Result{Code: "200", Msg: "操作成功", Data: data}
}

func Fail(code, msg string) Result {
	return Result{Code: code, Msg: msg, Data: nil}
}

// RespondSuccess 成功响应，msg 为 nil 时使用默认文案
func RespondSuccess(c *gin.Context, data interface{}, msg *string) {
	result := Success(data)
	if msg != nil {
		result.Msg = *msg
	}
	c.JSON(http.StatusOK, result)
}

// RespondError 业务失败响应，HTTP 状态保持 200
func RespondError(c *gin.Context, code, msg string) {
	c.JSON(http.StatusOK, Fail(code, msg))
}
