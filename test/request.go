package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"activity-signup/config"
	"activity-signup/internal/global/database"
	"activity-signup/internal/global/jwt"
	"activity-signup/internal/global/response"
	"activity-signup/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const JWTSecret = "test-secret"

// Setup 测试配置 + 临时 sqlite 数据库，赋值给全局 database.DB
func Setup(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.JWT.AccessSecret = JWTSecret
	cfg.Database.URL = "sqlite:///" + filepath.Join(t.TempDir(), "activities.db")
	cfg.Backup.Dir = filepath.Join(t.TempDir(), "backups")
	config.Set(cfg)

	db, target, err := database.Open(cfg.Database, cfg.Mode)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB, database.Source = db, target
	t.Cleanup(func() {
		_ = database.Close(db)
		database.DB = nil
	})
}

// Token 为指定角色签发令牌，用户不存在时先创建
func Token(t *testing.T, email string, role model.Role) string {
	t.Helper()
	user := model.User{Email: email, Role: role}
	require.NoError(t, database.DB.Where(model.User{Email: email}).FirstOrCreate(&user).Error)
	token, err := jwt.GenerateToken(&user, time.Hour)
	require.NoError(t, err)
	return token
}

// DoRequest 向路由发起请求，返回状态码与解码后的响应体
func DoRequest(t *testing.T, r http.Handler, method, path string, body any, token string) (int, response.ResponseBody) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.ResponseBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w.Code, resp
}

// DecodeData 把响应中的 data 转成具体类型
func DecodeData(t *testing.T, resp response.ResponseBody, dst any) {
	t.Helper()
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dst))
}
