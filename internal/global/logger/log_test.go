package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"activity-signup/config"

	"github.com/stretchr/testify/require"
)

func TestBuildTextLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = config.ModeDebug
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	l := build(cfg, &buf).With("module", "Activity")
	l.Info("hidden")
	l.Warn("活动已满", "activity", "Chess Club")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "activity=\"Chess Club\"")
	require.Contains(t, out, "module=Activity")
	require.Contains(t, out, "app_name=activity-signup")
}

func TestGetLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	require.Equal(t, slog.LevelError, getLogLevel("error"))
	require.Equal(t, slog.LevelInfo, getLogLevel("bogus"))
}
