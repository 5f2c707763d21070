package services

import (
	stderrors "errors"
	"time"

	"chat-admin/models"
	"chat-admin/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户管理服务
type UserService struct {
	DB      *gorm.DB
	Counter *DailyCounter
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, Counter: NewDailyCounter()}
}

// PageResult 分页查询结果
type PageResult struct {
	Total   int64       `json:"total"`
	Records interface{} `json:"records"`
}

// UserFilter 分页查询的可选过滤条件，空串表示跳过
type UserFilter struct {
	Username string
	Nickname string
	Address  string
	Phone    string
	Email    string
}

func (f UserFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Username != "" {
		q = q.Where("username LIKE ?", "%"+f.Username+"%")
	}
	if f.Nickname != "" {
		q = q.Where("nickname LIKE ?", "%"+f.Nickname+"%")
	}
	if f.Address != "" {
		q = q.Where("address LIKE ?", "%"+f.Address+"%")
	}
	if f.Phone != "" {
		q = q.Where("phone LIKE ?", "%"+f.Phone+"%")
	}
	if f.Email != "" {
		q = q.Where("email LIKE ?", "%"+f.Email+"%")
	}
	return q
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", utils.Persistence(err, "密码加密失败")
	}
	return string(hashed), nil
}

// UsernameExists 检查用户名是否已被占用
func (s *UserService) UsernameExists(username string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, utils.Persistence(err, "查询用户名失败")
	}
	return count > 0, nil
}

// Save 新增用户，携带 ID 时转为更新
func (s *UserService) Save(user *models.User) error {
	if user.ID != 0 {
		return s.Update(user)
	}

	exists, err := s.UsernameExists(user.Username)
	if err != nil {
		return err
	}
	if exists {
		return utils.Conflict("用户名已存在")
	}

	if user.Password != "" {
		hashed, err := hashPassword(user.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}

	// 服务端默认值
	user.IsOnline = 0
	user.CreatedAt = time.Now()

	if err := s.DB.Create(user).Error; err != nil {
		return utils.Persistence(err, "创建用户失败")
	}
	return nil
}

// Update 全字段更新，更名时重新校验唯一性
func (s *UserService) Update(user *models.User) error {
	var exist models.User
	if err := s.DB.First(&exist, user.ID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("用户不存在")
		}
		return utils.Persistence(err, "查询用户失败")
	}

	if exist.Username != user.Username {
		taken, err := s.UsernameExists(user.Username)
		if err != nil {
			return err
		}
		if taken {
			return utils.Conflict("用户名已存在")
		}
	}

	if user.Password == "" {
		user.Password = exist.Password
	} else {
		hashed, err := hashPassword(user.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}
	user.CreatedAt = exist.CreatedAt

	if err := s.DB.Save(user).Error; err != nil {
		return utils.Persistence(err, "修改用户失败")
	}
	return nil
}

// GetByID 按 ID 查询
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("用户不存在")
		}
		return nil, utils.Persistence(err, "查询用户失败")
	}
	return &user, nil
}

// List 查询全部用户
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("id").Find(&users).Error; err != nil {
		return nil, utils.Persistence(err, "查询用户列表失败")
	}
	return users, nil
}

// FindByUsername 按用户名精确查询，查不到返回 nil
func (s *UserService) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, utils.Persistence(err, "查询用户失败")
	}
	return &user, nil
}

// Page 分页加条件查询，按 ID 倒序
func (s *UserService) Page(filter UserFilter, pageNum, pageSize int) (*PageResult, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	q := filter.apply(s.DB.Model(&models.User{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, utils.Persistence(err, "统计用户总数失败")
	}

	var users []models.User
	err := q.Order("id DESC").
		Limit(pageSize).
		Offset((pageNum - 1) * pageSize).
		Find(&users).Error
	if err != nil {
		return nil, utils.Persistence(err, "查询用户分页失败")
	}
	return &PageResult{Total: total, Records: users}, nil
}

// RemoveByID 删除用户及其全部关联数据，整体在一个事务内执行。
// 删除顺序：子表在前，users 最后。
func (s *UserService) RemoveByID(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("用户不存在")
			}
			return utils.Persistence(err, "查询用户失败")
		}

		// 1. 用户自身的已读记录和发出的消息
		if err := tx.Exec("DELETE FROM message_reads WHERE user_id = ?", id).Error; err != nil {
			return utils.Persistence(err, "删除消息已读记录失败")
		}
		if err := tx.Exec("DELETE FROM messages WHERE sender_id = ?", id).Error; err != nil {
			return utils.Persistence(err, "删除用户消息失败")
		}

		// 2. 用户拥有的会话及其关联数据
		var conversationIDs []uint
		if err := tx.Model(&models.Conversation{}).Where("owner_id = ?", id).Pluck("id", &conversationIDs).Error; err != nil {
			return utils.Persistence(err, "查询用户会话失败")
		}
		for _, cid := range conversationIDs {
			if err := tx.Exec("DELETE FROM message_reads WHERE message_id IN (SELECT id FROM messages WHERE conversation_id = ?)", cid).Error; err != nil {
				return utils.Persistence(err, "删除会话已读记录失败")
			}
			if err := tx.Exec("DELETE FROM messages WHERE conversation_id = ?", cid).Error; err != nil {
				return utils.Persistence(err, "删除会话消息失败")
			}
			if err := tx.Exec("DELETE FROM conversation_participants WHERE conversation_id = ?", cid).Error; err != nil {
				return utils.Persistence(err, "删除会话参与者失败")
			}
			if err := tx.Exec("DELETE FROM conversations WHERE id = ?", cid).Error; err != nil {
				return utils.Persistence(err, "删除会话失败")
			}
		}

		// 3. 用户参与的其他会话记录
		if err := tx.Exec("DELETE FROM conversation_participants WHERE user_id = ?", id).Error; err != nil {
			return utils.Persistence(err, "删除会话参与记录失败")
		}

		// 4. 好友关系（双向）
		if err := tx.Exec("DELETE FROM friendships WHERE user_id = ? OR friend_id = ?", id, id).Error; err != nil {
			return utils.Persistence(err, "删除好友关系失败")
		}

		// 5. 最后删除用户本身
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return utils.Persistence(err, "删除用户失败")
		}
		return nil
	})
}

// RemoveByIDs 逐个删除，遇到失败立即停止并报告失败的 ID。
// 每个 ID 的级联删除是独立事务，失败前已删除的用户不会回滚。
func (s *UserService) RemoveByIDs(ids []uint) error {
	for _, id := range ids {
		if err := s.RemoveByID(id); err != nil {
			return utils.Wrapf(err, "删除用户ID=%d失败", id)
		}
	}
	return nil
}
