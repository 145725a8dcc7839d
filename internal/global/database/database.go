package database

import (
	"context"
	"time"

	"activity-signup/config"
	"activity-signup/internal/global/sentry/tracing"
	"activity-signup/internal/model"
	"activity-signup/tools"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	DB     *gorm.DB
	Source Target
)

// Init 按全局配置连接数据库并自动迁移
func Init() {
	db, target, err := Open(config.Get().Database, config.Get().Mode)
	tools.PanicOnErr(err)

	if tracing.IsEnabled() {
		tools.PanicOnErr(db.Use(tracing.NewGormTracingPlugin(string(target.Dialect))))
	}

	tools.PanicOnErr(Migrate(db))
	DB, Source = db, target
}

// Open 只建立连接与连接池，不做迁移
func Open(cfg config.Database, mode config.Mode) (*gorm.DB, Target, error) {
	target, err := ParseURL(cfg.URL, cfg.BusyTimeout)
	if err != nil {
		return nil, Target{}, err
	}

	var dialector gorm.Dialector
	switch target.Dialect {
	case DialectSQLite:
		dialector = sqlite.Open(target.DSN)
	case DialectPostgres:
		dialector = postgres.Open(target.DSN)
	case DialectMySQL:
		dialector = mysql.Open(target.DSN)
	}

	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		// 唯一约束冲突统一翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
	}
	switch mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	default:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, target, errors.Wrapf(err, "open %s", target.Redacted())
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, target, err
	}
	if target.Memory {
		// 唯一的连接关闭后内存库随之消失，所以不设置过期时间
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		return db, target, nil
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, target, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.Models()...)
}

// Reset 删除所有表后重建，数据全部丢失
func Reset(db *gorm.DB) error {
	models := model.Models()
	// 按依赖逆序删除
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return err
		}
	}
	return Migrate(db)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
