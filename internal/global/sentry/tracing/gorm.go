package tracing

import (
	"errors"
	"time"

	"activity-signup/config"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey  = "sentry:span"
	gormStartKey = "sentry:start"
	gormPrefix   = "sentry_tracing"
)

// GormTracingPlugin 为每条 SQL 创建一个子 span，描述只记录表名
type GormTracingPlugin struct {
	system        string
	slowThreshold time.Duration
}

func NewGormTracingPlugin(system string) *GormTracingPlugin {
	return &GormTracingPlugin{
		system:        system,
		slowThreshold: time.Duration(config.Get().Sentry.Tracing.DBSlowThresholdMs) * time.Millisecond,
	}
}

func (p *GormTracingPlugin) Name() string {
	return "SentryTracingPlugin"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register(gormPrefix+":before_create", p.before("db.sql.create")),
		cb.Query().Before("gorm:query").Register(gormPrefix+":before_query", p.before("db.sql.query")),
		cb.Update().Before("gorm:update").Register(gormPrefix+":before_update", p.before("db.sql.update")),
		cb.Delete().Before("gorm:delete").Register(gormPrefix+":before_delete", p.before("db.sql.delete")),
		cb.Row().Before("gorm:row").Register(gormPrefix+":before_row", p.before("db.sql.row")),
		cb.Raw().Before("gorm:raw").Register(gormPrefix+":before_raw", p.before("db.sql.raw")),

		cb.Create().After("gorm:create").Register(gormPrefix+":after_create", p.after),
		cb.Query().After("gorm:query").Register(gormPrefix+":after_query", p.after),
		cb.Update().After("gorm:update").Register(gormPrefix+":after_update", p.after),
		cb.Delete().After("gorm:delete").Register(gormPrefix+":after_delete", p.after),
		cb.Row().After("gorm:row").Register(gormPrefix+":after_row", p.after),
		cb.Raw().After("gorm:raw").Register(gormPrefix+":after_raw", p.after),
	)
}

func (p *GormTracingPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}
		db.InstanceSet(gormStartKey, time.Now())

		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		span := StartSpan(db.Statement.Context, operation, table)
		if span == nil {
			return
		}
		span.SetData("db.system", p.system)
		db.InstanceSet(gormSpanKey, span)
		db.Statement.Context = span.Context()
	}
}

func (p *GormTracingPlugin) after(db *gorm.DB) {
	if db.Statement == nil {
		return
	}
	startVal, ok := db.InstanceGet(gormStartKey)
	if !ok {
		return
	}
	start, _ := startVal.(time.Time)
	spanVal, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, _ := spanVal.(*sentry.Span)
	if span != nil {
		span.SetData("db.rows_affected", db.RowsAffected)
	}

	err := db.Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	finish(span, time.Since(start), p.slowThreshold, err)
}
