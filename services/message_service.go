package services

import (
	"time"

	"chat-admin/models"
	"chat-admin/utils"

	"gorm.io/gorm"
)

// UnknownSenderName 发送者已被删除时的占位显示名
const UnknownSenderName = "未知用户"

// MessageService 消息浏览服务
type MessageService struct {
	DB *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db}
}

// MessageRow 消息列表的展示投影，附带发送者用户名
type MessageRow struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}

// Page 分页查询未删除的消息，按创建时间倒序。
// 取出一页后批量解析发送者用户名，发送者不存在时显示占位名。
func (s *MessageService) Page(senderID *uint, content string, pageNum, pageSize int) (*PageResult, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	q := s.DB.Model(&models.Message{}).Where("is_deleted = ?", 0)
	if senderID != nil {
		q = q.Where("sender_id = ?", *senderID)
	}
	if content != "" {
		q = q.Where("content LIKE ?", "%"+content+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, utils.Persistence(err, "统计消息总数失败")
	}

	var messages []models.Message
	err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((pageNum - 1) * pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, utils.Persistence(err, "查询消息分页失败")
	}

	names, err := s.senderNames(messages)
	if err != nil {
		return nil, err
	}

	rows := make([]MessageRow, 0, len(messages))
	for _, m := range messages {
		name, ok := names[m.SenderID]
		if !ok {
			name = UnknownSenderName
		}
		rows = append(rows, MessageRow{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderName: name,
			Content:    m.Content,
			Type:       m.Type,
			CreatedAt:  m.CreatedAt,
		})
	}
	return &PageResult{Total: total, Records: rows}, nil
}

// senderNames 去重发送者 ID 后一次性查询用户名
func (s *MessageService) senderNames(messages []models.Message) (map[uint]string, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(messages))
	for _, m := range messages {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			ids = append(ids, m.SenderID)
		}
	}

	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := s.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, utils.Persistence(err, "查询发送者信息失败")
	}
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}
