package httpclient

import (
	"time"

	"activity-signup/internal/global/sentry/tracing"

	"github.com/go-resty/resty/v2"
)

var Client = New()

func New() *resty.Client {
	return resty.New().
		SetTimeout(10*time.Second).
		SetRetryCount(0).
		SetHeader("User-Agent", "activity-signup/1.0")
}

// Init 重新创建客户端并按配置挂上 Sentry 追踪
func Init() {
	Client = New()
	if tracing.IsEnabled() {
		tracing.SetupRestyTracing(Client)
	}
}
