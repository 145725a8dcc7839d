package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"activity-signup/internal/global/database"
	"activity-signup/internal/global/jwt"
	"activity-signup/internal/global/response"
	"activity-signup/internal/model"
	"activity-signup/internal/store"
	"activity-signup/test"
	"activity-signup/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setup(t *testing.T) *gin.Engine {
	test.Setup(t)
	m := &ModuleAdmin{}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group(""))
	_, err := store.Seed(context.Background(), database.DB)
	require.NoError(t, err)
	return r
}

func TestAdminRequiresAdmin(t *testing.T) {
	r := setup(t)
	teacher := test.Token(t, "teacher@mergington.edu", model.RoleTeacher)

	status, resp := test.DoRequest(t, r, http.MethodGet, "/admin/backup", nil, "")
	test.ErrorEqual(t, response.ErrUnauthorized, status, resp)
	status, resp = test.DoRequest(t, r, http.MethodGet, "/admin/export", nil, teacher)
	test.ErrorEqual(t, response.ErrForbidden, status, resp)
}

func TestPromotedUserReachesAdmin(t *testing.T) {
	r := setup(t)
	student := test.Token(t, "michael@mergington.edu", model.RoleStudent)
	status, resp := test.DoRequest(t, r, http.MethodGet, "/admin/backup", nil, student)
	test.ErrorEqual(t, response.ErrForbidden, status, resp)

	admin, err := store.EnsureUser(context.Background(), database.DB, "michael@mergington.edu", model.RoleAdmin)
	require.NoError(t, err)
	token, err := jwt.GenerateToken(admin, time.Hour)
	require.NoError(t, err)

	status, resp = test.DoRequest(t, r, http.MethodGet, "/admin/backup", nil, token)
	test.NoError(t, status, resp)
}

func TestBackup(t *testing.T) {
	r := setup(t)
	admin := test.Token(t, "admin@mergington.edu", model.RoleAdmin)

	status, resp := test.DoRequest(t, r, http.MethodGet, "/admin/backup", nil, admin)
	test.NoError(t, status, resp)
	var body struct {
		Message string `json:"message"`
		Path    string `json:"backup_path"`
		Size    int64  `json:"size"`
	}
	test.DecodeData(t, resp, &body)
	require.Equal(t, "Backup created successfully", body.Message)
	require.Contains(t, body.Path, "activities_backup_")
	info, err := os.Stat(body.Path)
	require.NoError(t, err)
	require.Equal(t, body.Size, info.Size())
}

func TestBackupUnavailable(t *testing.T) {
	r := setup(t)
	admin := test.Token(t, "admin@mergington.edu", model.RoleAdmin)
	database.Source.Dialect = database.DialectPostgres

	status, resp := test.DoRequest(t, r, http.MethodGet, "/admin/backup", nil, admin)
	test.NoError(t, status, resp)
	var body map[string]string
	test.DecodeData(t, resp, &body)
	require.Equal(t, "Backup not available for this database type", body["message"])
}

func TestExport(t *testing.T) {
	r := setup(t)
	admin := test.Token(t, "admin@mergington.edu", model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/export", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, tools.ExcelContentType, w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Activities", "Enrollments"}, f.GetSheetList())

	activities, err := f.GetRows("Activities")
	require.NoError(t, err)
	require.Len(t, activities, 10)
	require.Equal(t, "活动", activities[0][0])
	require.Equal(t, "Art Club", activities[1][0])

	enrollments, err := f.GetRows("Enrollments")
	require.NoError(t, err)
	require.Len(t, enrollments, 19)
}
