// Package tracing 把 gorm / redis / resty 的调用挂到当前请求的 Sentry transaction 下
package tracing

import (
	"context"
	"time"

	"activity-signup/config"

	"github.com/getsentry/sentry-go"
)

func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// StartSpan 没有父 span 时返回 nil
func StartSpan(ctx context.Context, operation, description string) *sentry.Span {
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}

// finish 耗时未达到阈值的 span 不发送
func finish(span *sentry.Span, elapsed, threshold time.Duration, err error) {
	if span == nil {
		return
	}
	if threshold > 0 && elapsed < threshold {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
