package admin

import (
	"errors"

	"activity-signup/config"
	"activity-signup/internal/global/backup"
	"activity-signup/internal/global/database"
	"activity-signup/internal/global/httpclient"
	"activity-signup/internal/global/logger"
	"activity-signup/internal/global/rdb"
	"activity-signup/internal/global/response"

	"github.com/gin-gonic/gin"
)

// Backup 生成数据库备份，非 sqlite 数据库返回不可用提示
func Backup(c *gin.Context) {
	cfg := config.Get().Backup
	opts := backup.Options{
		Dir:      cfg.Dir,
		Webhook:  cfg.Webhook,
		Notifier: httpclient.Client,
		Logger:   logger.WithContext(log, c),
	}
	if rdb.Client != nil {
		opts.Locker = rdb.Client
	}
	if uploader != nil {
		opts.Uploader = uploader
	}

	res, err := backup.Run(c.Request.Context(), database.DB, database.Source, opts)
	if err != nil {
		if errors.Is(err, rdb.ErrLocked) {
			log.Warn("备份进行中", "error", err)
			response.Fail(c, response.ErrBackupRunning)
			return
		}
		log.Error("数据库备份失败", "error", err)
		response.Fail(c, response.ErrBackup.WithOrigin(err))
		return
	}

	if !res.Available {
		response.Success(c, gin.H{"message": res.Message})
		return
	}
	data := gin.H{
		"message":     "Backup created successfully",
		"backup_path": res.Path,
		"size":        res.Size,
	}
	if res.S3Key != "" {
		data["s3_key"] = res.S3Key
	}
	response.Success(c, data)
}
