package health

import (
	"context"
	"net/http"
	"testing"

	"activity-signup/internal/global/database"
	"activity-signup/internal/global/response"
	"activity-signup/internal/store"
	"activity-signup/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *gin.Engine {
	test.Setup(t)
	m := &ModuleHealth{}
	m.Init()
	r := gin.New()
	m.InitRouter(r.Group(""))
	return r
}

func TestPing(t *testing.T) {
	r := setup(t)
	status, resp := test.DoRequest(t, r, http.MethodGet, "/ping", nil, "")
	test.NoError(t, status, resp)
	var body map[string]string
	test.DecodeData(t, resp, &body)
	require.Equal(t, "pong", body["message"])
}

func TestHealth(t *testing.T) {
	r := setup(t)
	_, err := store.Seed(context.Background(), database.DB)
	require.NoError(t, err)

	status, resp := test.DoRequest(t, r, http.MethodGet, "/health", nil, "")
	test.NoError(t, status, resp)
	var body struct {
		Status      string `json:"status"`
		Database    string `json:"database"`
		Activities  int64  `json:"activities"`
		Users       int64  `json:"users"`
		Enrollments int64  `json:"enrollments"`
	}
	test.DecodeData(t, resp, &body)
	require.Equal(t, "healthy", body.Status)
	require.Equal(t, "connected", body.Database)
	require.EqualValues(t, 9, body.Activities)
	require.EqualValues(t, 18, body.Users)
	require.EqualValues(t, 18, body.Enrollments)
}

func TestHealthUnavailable(t *testing.T) {
	r := setup(t)
	require.NoError(t, database.Close(database.DB))

	status, resp := test.DoRequest(t, r, http.MethodGet, "/health", nil, "")
	test.ErrorEqual(t, response.ErrUnavailable, status, resp)
}
