package test

import (
	"net/http"
	"testing"

	"activity-signup/internal/global/response"

	"github.com/stretchr/testify/require"
)

func ErrorEqual(t *testing.T, expected *response.Error, status int, resp response.ResponseBody) {
	t.Helper()
	require.Equal(t, expected.HTTPStatus(), status)
	require.Equal(t, expected.Code, resp.Code)
	require.Equal(t, expected.Message, resp.Msg)
}

func NoError(t *testing.T, status int, resp response.ResponseBody) {
	t.Helper()
	require.Equal(t, http.StatusOK, status, resp.Msg)
	require.Equal(t, int32(200), resp.Code)
}
