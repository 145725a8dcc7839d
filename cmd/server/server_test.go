package server

import (
	"net/http"
	"testing"

	"activity-signup/config"
	"activity-signup/internal/global/logger"
	"activity-signup/internal/module"
	"activity-signup/test"

	"github.com/stretchr/testify/require"
)

func TestEngine(t *testing.T) {
	test.Setup(t)
	log = logger.New("Server")
	for _, m := range module.Modules {
		m.Init()
	}
	r := NewEngine()

	status, resp := test.DoRequest(t, r, http.MethodGet, "/ping", nil, "")
	test.NoError(t, status, resp)

	status, resp = test.DoRequest(t, r, http.MethodGet, "/health", nil, "")
	test.NoError(t, status, resp)

	status, resp = test.DoRequest(t, r, http.MethodGet, "/activities", nil, "")
	test.NoError(t, status, resp)
	var activities map[string]any
	test.DecodeData(t, resp, &activities)
	require.Empty(t, activities)

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /activities/:name/signup",
		"DELETE /activities/:name/unregister",
		"GET /admin/backup",
		"GET /admin/export",
		"GET /users/:email",
	} {
		require.True(t, routes[want], want)
	}
}

func TestCheckConfig(t *testing.T) {
	log = logger.New("Server")

	cfg := config.Default()
	require.ErrorIs(t, checkConfig(cfg), config.ErrNoJWTSecret)

	cfg.Mode = config.ModeDebug
	require.NoError(t, checkConfig(cfg))

	cfg.Mode = config.ModeRelease
	cfg.JWT.AccessSecret = "s3cr3t"
	require.NoError(t, checkConfig(cfg))
}
