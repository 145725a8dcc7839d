package middleware

import (
	"bytes"
	"log/slog"
	"time"

	"activity-signup/internal/global/logger"
	"activity-signup/internal/global/response"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// maxResponseLogSize 日志中记录的响应体上限（4KB）
const maxResponseLogSize = 4 * 1024

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if remaining := maxResponseLogSize - w.body.Len(); remaining > 0 {
		if len(b) > remaining {
			w.body.Write(b[:remaining])
		} else {
			w.body.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// Logger release 模式下的访问日志，错误响应额外记录响应体
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		blw := &responseBodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(start).String(),
		}
		l := logger.WithContext(log, c)

		if err, ok := c.Get(response.ErrorContextKey); ok {
			attrs = append(attrs, "error", err, "response_body", blw.body.String())
		}
		switch {
		case status >= 500:
			l.Error("HTTP Request", attrs...)
		case status >= 400:
			l.Warn("HTTP Request", attrs...)
		default:
			l.Info("HTTP Request", attrs...)
		}
	}
}

// SentryEnrichIP 放在 sentry 中间件之后，把客户端 IP 与请求 id 写入 Scope
func SentryEnrichIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(scope *sentrylib.Scope) {
				clientIP := c.ClientIP()
				scope.SetUser(sentrylib.User{IPAddress: clientIP})
				scope.SetTag("client_ip", clientIP)
				if rid := c.GetString("request_id"); rid != "" {
					scope.SetTag("request_id", rid)
				}
			})
		}
		c.Next()
	}
}
