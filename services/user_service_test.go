package services

import (
	"regexp"
	"testing"

	"chat-admin/models"
	"chat-admin/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserService_Save_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE username = ?")).
		WithArgs("zhangsan").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	user := &models.User{Username: "zhangsan", Password: "123456", Nickname: "张三"}
	err := service.Save(user)

	assert.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
	assert.Equal(t, 0, user.IsOnline)
	assert.False(t, user.CreatedAt.IsZero())
	// 密码应已被加密
	assert.NotEqual(t, "123456", user.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Save_Conflict(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE username = ?")).
		WithArgs("zhangsan").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := service.Save(&models.User{Username: "zhangsan"})

	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.Equal(t, "用户名已存在", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Update_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := service.Update(&models.User{ID: 99, Username: "nobody"})

	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.Equal(t, "用户不存在", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Update_UsernameConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "zhangsan"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE username = ?")).
		WithArgs("lisi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := service.Update(&models.User{ID: 1, Username: "lisi"})

	assert.True(t, utils.IsKind(err, utils.KindConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := service.GetByID(42)

	assert.Nil(t, user)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindByUsername_Missing(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := service.FindByUsername("ghost")

	// 查不到不算错误，data 为 null
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Page_WithFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE username LIKE ? AND address LIKE ?")).
		WithArgs("%zhang%", "%北京%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username LIKE ? AND address LIKE ? ORDER BY id DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(8, "zhangsan").
			AddRow(2, "zhangwu"))

	filter := UserFilter{Username: "zhang", Address: "北京"}
	page, err := service.Page(filter, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	records := page.Records.([]models.User)
	require.Len(t, records, 2)
	assert.Equal(t, uint(8), records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Page_NormalizesPageParams(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	// pageNum=0/pageSize=0 回退为第 1 页、每页 10 条，首页不带 OFFSET
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` ORDER BY id DESC LIMIT ?")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(3, "zhangsan"))

	page, err := service.Page(UserFilter{}, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Page_OffsetBeyondFirstPage(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE username LIKE ?")).
		WithArgs("%zhang%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	// 第 3 页、每页 5 条：跳过前 10 条
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username LIKE ? ORDER BY id DESC LIMIT ? OFFSET ?")).
		WithArgs("%zhang%", 5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(2, "zhangliu").
			AddRow(1, "zhangqi"))

	page, err := service.Page(UserFilter{Username: "zhang"}, 3, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)
	records := page.Records.([]models.User)
	require.Len(t, records, 2)
	assert.Equal(t, uint(2), records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_RemoveByID_Cascade(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "zhangsan"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM message_reads WHERE user_id = ?")).
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM messages WHERE sender_id = ?")).
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `id` FROM `conversations` WHERE owner_id = ?")).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM message_reads WHERE message_id IN (SELECT id FROM messages WHERE conversation_id = ?)")).
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM messages WHERE conversation_id = ?")).
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM conversation_participants WHERE conversation_id = ?")).
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM conversations WHERE id = ?")).
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM conversation_participants WHERE user_id = ?")).
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM friendships WHERE user_id = ? OR friend_id = ?")).
		WithArgs(uint(1), uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `users` WHERE `users`.`id` = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := service.RemoveByID(1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_RemoveByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := service.RemoveByID(404)

	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_RemoveByID_RollbackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "zhangsan"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM message_reads WHERE user_id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM messages WHERE sender_id = ?")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := service.RemoveByID(1)

	assert.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindPersistence))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_RemoveByIDs_StopsAtFirstFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewUserService(db)

	// 第一个 ID 不存在，应立即停止并带上失败的 ID
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := service.RemoveByIDs([]uint{5, 6})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "删除用户ID=5失败")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
