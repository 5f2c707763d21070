package services

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"chat-admin/models"
	"chat-admin/utils"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	// ExportSheetName 导出表格的工作表名
	ExportSheetName = "用户数据"
	// ExportFileName 导出文件名（不含扩展名）
	ExportFileName = "用户数据"

	importBatchSize = 100
)

var excelHeaders = []interface{}{"ID", "用户名", "昵称", "邮箱", "电话", "性别", "年龄", "地址", "头像", "注册时间"}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// rowToUser 将一行表格数据解析为用户记录，空行返回 nil
func rowToUser(row []string, rowNum int) (*models.User, error) {
	user := models.User{
		Username: cell(row, 1),
		Nickname: cell(row, 2),
		Email:    cell(row, 3),
		Phone:    cell(row, 4),
		Gender:   cell(row, 5),
		Address:  cell(row, 7),
		Avatar:   cell(row, 8),
	}

	if idStr := cell(row, 0); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return nil, utils.Validation(fmt.Sprintf("第%d行ID必须是数字", rowNum))
		}
		user.ID = uint(id)
	}

	if ageStr := cell(row, 6); ageStr != "" {
		age, err := strconv.Atoi(ageStr)
		if err != nil {
			return nil, utils.Validation(fmt.Sprintf("第%d行年龄必须是数字", rowNum))
		}
		user.Age = age
	}

	if user.ID == 0 && user.Username == "" {
		return nil, nil
	}
	return &user, nil
}

// upsert 按 ID 插入或更新：无 ID 或记录不存在则插入，否则更新
func (s *UserService) upsert(user *models.User) error {
	if user.ID != 0 {
		var exist models.User
		err := s.DB.First(&exist, user.ID).Error
		if err == nil {
			user.Password = exist.Password
			user.CreatedAt = exist.CreatedAt
			user.IsOnline = exist.IsOnline
			if err := s.DB.Save(user).Error; err != nil {
				return utils.Persistence(err, "更新用户失败")
			}
			return nil
		}
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Persistence(err, "查询用户失败")
		}
	}

	user.IsOnline = 0
	user.CreatedAt = time.Now()
	if err := s.DB.Create(user).Error; err != nil {
		return utils.Persistence(err, "导入用户失败")
	}
	return nil
}

func (s *UserService) upsertBatch(users []models.User) error {
	for i := range users {
		if err := s.upsert(&users[i]); err != nil {
			return err
		}
	}
	return nil
}

// ImportExcel 解析上传的表格并分批入库，首行为表头
func (s *UserService) ImportExcel(r io.Reader) error {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return utils.Validation("无法解析表格文件: " + err.Error())
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return utils.Validation("读取表格内容失败: " + err.Error())
	}

	batch := make([]models.User, 0, importBatchSize)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		user, err := rowToUser(row, i+1)
		if err != nil {
			return err
		}
		if user == nil {
			continue
		}
		batch = append(batch, *user)
		if len(batch) >= importBatchSize {
			if err := s.upsertBatch(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		return s.upsertBatch(batch)
	}
	return nil
}

// ExportExcel 将全部用户写入一个 xlsx 工作表
func (s *UserService) ExportExcel(w io.Writer) error {
	users, err := s.List()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return utils.Persistence(err, "创建工作表失败")
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &excelHeaders); err != nil {
		return utils.Persistence(err, "写入表头失败")
	}

	for i, u := range users {
		row := []interface{}{
			u.ID, u.Username, u.Nickname, u.Email, u.Phone,
			u.Gender, u.Age, u.Address, u.Avatar,
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		axis := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(ExportSheetName, axis, &row); err != nil {
			return utils.Persistence(err, "写入数据行失败")
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return utils.Persistence(err, "输出表格文件失败")
	}
	return nil
}
