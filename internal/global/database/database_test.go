package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"activity-signup/config"
	"activity-signup/internal/model"

	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	t.Run("relative sqlite", func(t *testing.T) {
		target, err := ParseURL("sqlite+aiosqlite:///./mergington_activities.db", 0)
		require.NoError(t, err)
		require.Equal(t, DialectSQLite, target.Dialect)
		require.Equal(t, "mergington_activities.db", target.Path)
		require.True(t, strings.HasPrefix(target.DSN, "file:mergington_activities.db?"))
		require.Contains(t, target.DSN, "_journal_mode=WAL")
		require.Contains(t, target.DSN, "_foreign_keys=on")
		require.Contains(t, target.DSN, "_busy_timeout=20000")
	})

	t.Run("absolute sqlite", func(t *testing.T) {
		target, err := ParseURL("sqlite:////var/lib/school/activities.db", 5000)
		require.NoError(t, err)
		require.Equal(t, "/var/lib/school/activities.db", target.Path)
		require.Contains(t, target.DSN, "_busy_timeout=5000")
	})

	t.Run("postgres", func(t *testing.T) {
		target, err := ParseURL("postgresql+asyncpg://school:secret@db:5432/activities?sslmode=disable", 0)
		require.NoError(t, err)
		require.Equal(t, DialectPostgres, target.Dialect)
		require.Equal(t, "postgres://school:secret@db:5432/activities?sslmode=disable", target.DSN)
		require.Equal(t, "postgres://school@db:5432/activities", target.Redacted())
	})

	t.Run("mysql", func(t *testing.T) {
		target, err := ParseURL("mysql://school:secret@db:3306/activities", 0)
		require.NoError(t, err)
		require.Equal(t, DialectMySQL, target.Dialect)
		require.Contains(t, target.DSN, "school:secret@tcp(db:3306)/activities")
		require.Contains(t, target.DSN, "parseTime=true")
		require.NotContains(t, target.Redacted(), "secret")
	})

	t.Run("memory sqlite", func(t *testing.T) {
		target, err := ParseURL("sqlite:///:memory:", 0)
		require.NoError(t, err)
		require.True(t, target.Memory)
		require.True(t, strings.HasPrefix(target.DSN, "file::memory:?"))

		target, err = ParseURL("sqlite:///./activities.db", 0)
		require.NoError(t, err)
		require.False(t, target.Memory)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseURL("activities.db", 0)
		require.Error(t, err)
		_, err = ParseURL("oracle://x", 0)
		require.Error(t, err)
		_, err = ParseURL("sqlite:///", 0)
		require.Error(t, err)
	})
}

func TestOpenMigrateReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.db")
	db, target, err := Open(config.Database{URL: "sqlite:///" + path, MaxOpenConns: 4}, config.ModeRelease)
	require.NoError(t, err)
	defer Close(db)
	require.Equal(t, path, target.Path)

	require.NoError(t, Migrate(db))
	for _, m := range model.Models() {
		require.True(t, db.Migrator().HasTable(m))
	}
	require.NoError(t, Ping(context.Background(), db))

	require.NoError(t, db.Create(&model.User{Email: "john@mergington.edu"}).Error)
	require.NoError(t, Reset(db))

	var n int64
	require.NoError(t, db.Model(&model.User{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestOpenMemoryKeepsSingleConnection(t *testing.T) {
	db, target, err := Open(config.Database{URL: "sqlite:///:memory:", MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: 1}, config.ModeRelease)
	require.NoError(t, err)
	defer Close(db)
	require.True(t, target.Memory)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&model.User{Email: "john@mergington.edu"}).Error)

	// 多个并发查询共用同一个连接，都能看到迁移后的表和数据
	type result struct {
		n   int64
		err error
	}
	results := make(chan result, 4)
	for range 4 {
		go func() {
			var r result
			r.err = db.Model(&model.User{}).Count(&r.n).Error
			results <- r
		}()
	}
	for range 4 {
		r := <-results
		require.NoError(t, r.err)
		require.EqualValues(t, 1, r.n)
	}
}
