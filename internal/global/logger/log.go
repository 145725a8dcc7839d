package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"activity-signup/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// fanout 把同一条日志同时交给多个 handler
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// Get 全局 Logger，第一次调用时按配置构建
func Get() *slog.Logger {
	once.Do(func() {
		instance = build(config.Get(), os.Stdout)
	})
	return instance
}

func build(cfg *config.Config, stdout io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Mode == config.ModeRelease,
		Level:     getLogLevel(cfg.Log.Level),
	}

	var handler slog.Handler
	if cfg.Mode == config.ModeRelease && cfg.Log.FilePath != "" {
		// release 模式写文件并轮转
		handler = slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}, opts)
	} else {
		handler = slog.NewTextHandler(stdout, opts)
	}

	if cfg.Sentry.Dsn != "" {
		handler = fanout{handler, sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelError},
			LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			AddSource:  cfg.Mode == config.ModeRelease,
		}.NewSentryHandler(context.Background())}
	}

	return slog.New(handler).With(
		"app_name", "activity-signup",
		"env", string(cfg.Mode),
	)
}

// New 带 module 字段的子 Logger
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

// WithContext 附加请求 id 与客户端 IP
func WithContext(base *slog.Logger, c interface {
	ClientIP() string
	GetHeader(string) string
	GetString(string) string
}) *slog.Logger {
	l := base.With("client_ip", c.ClientIP())
	if rid := c.GetString("request_id"); rid != "" {
		l = l.With("request_id", rid)
	}
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		l = l.With("x_forwarded_for", forwardedFor)
	}
	return l
}

func getLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
