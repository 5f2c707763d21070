package controllers_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMessageController_FindPage_InvalidSenderID(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/message/page?pageNum=1&pageSize=10&senderId=abc", "")

	envelope := parseEnvelope(t, w)
	assert.Equal(t, "500", envelope["code"])
	assert.Equal(t, "发送者ID必须是数字", envelope["msg"])
}

func TestMessageController_FindPage_NullParamsIgnored(t *testing.T) {
	r, mock := setupRouter(t)

	// senderId=null 和 content=null 都按未传处理
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `messages` WHERE is_deleted = ?")).
		WithArgs(0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `messages` WHERE is_deleted = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doRequest(r, http.MethodGet, "/message/page?pageNum=1&pageSize=10&senderId=null&content=null", "")

	envelope := parseEnvelope(t, w)
	assert.Equal(t, "200", envelope["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
