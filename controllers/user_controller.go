package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"chat-admin/models"
	"chat-admin/services"
	"chat-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	Service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{Service: service}
}

// userRequest 创建/更新的请求体。Password 单独声明，
// 模型里的密码字段不参与 JSON 序列化。
type userRequest struct {
	models.User
	Password string `json:"password"`
}

// Save 新增用户
func (ctl *UserController) Save(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, "500", "请求参数错误: "+err.Error())
		return
	}

	user := req.User
	user.Password = req.Password
	if err := ctl.Service.Save(&user); err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, nil, nil)
}

// FindAll 查询全部用户
func (ctl *UserController) FindAll(c *gin.Context) {
	users, err := ctl.Service.List()
	if err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, users, nil)
}

// Delete 删除单个用户（级联）
func (ctl *UserController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, "500", "用户ID必须是数字")
		return
	}
	if err := ctl.Service.RemoveByID(uint(id)); err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, nil, nil)
}

// DeleteBatch 批量删除用户
func (ctl *UserController) DeleteBatch(c *gin.Context) {
	var ids []uint
	if err := c.ShouldBindJSON(&ids); err != nil {
		utils.RespondError(c, "500", "请求参数错误: "+err.Error())
		return
	}
	if len(ids) == 0 {
		utils.RespondError(c, "500", "ID列表不能为空")
		return
	}
	if err := ctl.Service.RemoveByIDs(ids); err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, nil, nil)
}

// FindPage 分页加条件查询
func (ctl *UserController) FindPage(c *gin.Context) {
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

	filter := services.UserFilter{
		Username: c.Query("username"),
		Nickname: c.Query("nickname"),
		Address:  c.Query("address"),
		Phone:    c.Query("phone"),
		Email:    c.Query("email"),
	}

	page, err := ctl.Service.Page(filter, pageNum, pageSize)
	if err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, page, nil)
}

// Import 上传表格批量导入用户
func (ctl *UserController) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, "500", "文件不能为空")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, "500", "读取上传文件失败: "+err.Error())
		return
	}
	defer file.Close()

	if err := ctl.Service.ImportExcel(file); err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, nil, nil)
}

// Export 导出全部用户为表格文件
func (ctl *UserController) Export(c *gin.Context) {
	filename := url.QueryEscape(services.ExportFileName)
	c.Header("Content-Type", "application/vnd.ms-excel")
	c.Header("Content-Disposition", "attachment;filename="+filename+".xlsx")

	if err := ctl.Service.ExportExcel(c.Writer); err != nil {
		logrus.Errorf("导出用户数据失败: %v", err)
	}
}

// Today 今日新增统计
func (ctl *UserController) Today(c *gin.Context) {
	stats, err := ctl.Service.TodayStats()
	if err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, stats, nil)
}

// Growth 近 7 天增长曲线
func (ctl *UserController) Growth(c *gin.Context) {
	stats, err := ctl.Service.Growth()
	if err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, stats, nil)
}

// Region 地区分布统计
func (ctl *UserController) Region(c *gin.Context) {
	distribution, err := ctl.Service.RegionDistribution()
	if err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, distribution, nil)
}

// Check 按用户名精确查询，查不到时 data 为 null
func (ctl *UserController) Check(c *gin.Context) {
	user, err := ctl.Service.FindByUsername(c.Param("username"))
	if err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, user, nil)
}

// Update 更新用户，请求体必须携带 ID
func (ctl *UserController) Update(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, "500", "请求参数错误: "+err.Error())
		return
	}
	if req.User.ID == 0 {
		utils.RespondError(c, "500", "用户ID不能为空")
		return
	}

	user := req.User
	user.Password = req.Password
	if err := ctl.Service.Update(&user); err != nil {
		utils.RespondError(c, "500", err.Error())
		return
	}
	utils.RespondSuccess(c, nil, nil)
}

// Test 连通性探测
func (ctl *UserController) Test(c *gin.Context) {
	users, err := ctl.Service.List()
	if err != nil {
		c.String(http.StatusOK, "连接失败：%s", err.Error())
		return
	}
	c.String(http.StatusOK, "连接成功，用户数：%d", len(users))
}
