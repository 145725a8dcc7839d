// Package backup 生成 sqlite 数据库的一致性副本，可选上传 S3 并通知 webhook
package backup

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"activity-signup/internal/global/database"
	"activity-signup/internal/global/rdb"
	"activity-signup/tools"

	"github.com/go-resty/resty/v2"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	lockKey = "backup:lock"
	lockTTL = 5 * time.Minute

	MsgUnavailable = "Backup not available for this database type"
)

// Uploader 由 objectstore.Store 实现
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

type Options struct {
	Dir      string
	Webhook  string
	Locker   redis.UniversalClient // nil 时不加锁
	Uploader Uploader              // nil 时不上传
	Notifier *resty.Client
	Logger   *slog.Logger
	Now      func() time.Time
}

type Result struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
	Path      string `json:"path,omitempty"`
	Size      int64  `json:"size,omitempty"`
	S3Key     string `json:"s3_key,omitempty"`
}

// FileName <stem>_backup_YYYYMMDD_HHMMSS<ext>
func FileName(source string, at time.Time) string {
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + "_backup_" + at.Format("20060102_150405") + ext
}

// Run 只支持 sqlite 文件库，内存库和其他方言返回 Available=false 的结果而不是错误
func Run(ctx context.Context, db *gorm.DB, target database.Target, opts Options) (*Result, error) {
	if target.Dialect != database.DialectSQLite || target.Memory {
		return &Result{Available: false, Message: MsgUnavailable}, nil
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Locker != nil {
		unlock, err := rdb.Lock(ctx, opts.Locker, lockKey, lockTTL)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(target.Path)
	}
	if err := tools.EnsureDir(dir); err != nil {
		return nil, errors.Wrap(err, "create backup dir")
	}
	dst := filepath.Join(dir, FileName(target.Path, opts.Now()))
	if err := copySQLite(ctx, db, dst); err != nil {
		_ = os.Remove(dst)
		return nil, err
	}

	info, err := os.Stat(dst)
	if err != nil {
		return nil, errors.Wrap(err, "stat backup")
	}
	res := &Result{
		Available: true,
		Message:   "Backup created",
		Path:      dst,
		Size:      info.Size(),
	}
	opts.Logger.Info("数据库备份完成", "path", dst, "size", res.Size)

	if opts.Uploader != nil {
		key, err := upload(ctx, opts.Uploader, dst)
		if err != nil {
			// 本地备份已成功，上传失败只记录
			opts.Logger.Error("备份上传失败", "error", err)
		} else {
			res.S3Key = key
		}
	}

	if opts.Webhook != "" && opts.Notifier != nil {
		if err := notify(ctx, opts.Notifier, opts.Webhook, res); err != nil {
			opts.Logger.Warn("备份通知失败", "error", err)
		}
	}
	return res, nil
}

// copySQLite 使用 sqlite 在线备份 API，写入过程中也能得到一致的副本
func copySQLite(ctx context.Context, db *gorm.DB, dst string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	srcConn, err := sqlDB.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "source connection")
	}
	defer srcConn.Close()

	destDB, err := sql.Open("sqlite3", "file:"+dst)
	if err != nil {
		return errors.Wrap(err, "open backup file")
	}
	defer destDB.Close()
	destConn, err := destDB.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "backup connection")
	}
	defer destConn.Close()

	return destConn.Raw(func(destRaw any) error {
		return srcConn.Raw(func(srcRaw any) error {
			dest, ok := destRaw.(*sqlite3.SQLiteConn)
			if !ok {
				return errors.Errorf("unexpected driver connection %T", destRaw)
			}
			src, ok := srcRaw.(*sqlite3.SQLiteConn)
			if !ok {
				return errors.Errorf("unexpected driver connection %T", srcRaw)
			}
			b, err := dest.Backup("main", src, "main")
			if err != nil {
				return errors.Wrap(err, "start backup")
			}
			if _, err := b.Step(-1); err != nil {
				_ = b.Finish()
				return errors.Wrap(err, "backup step")
			}
			return errors.Wrap(b.Finish(), "finish backup")
		})
	})
}

func upload(ctx context.Context, u Uploader, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return u.Upload(ctx, filepath.Base(path), tools.SQLiteContentType, f)
}

func notify(ctx context.Context, client *resty.Client, url string, res *Result) error {
	resp, err := client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"event":  "backup.created",
			"path":   res.Path,
			"size":   res.Size,
			"s3_key": res.S3Key,
		}).
		Post(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.Errorf("webhook responded %s", resp.Status())
	}
	return nil
}
