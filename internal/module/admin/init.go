package admin

import (
	"context"
	"log/slog"

	"activity-signup/config"
	"activity-signup/internal/global/logger"
	"activity-signup/internal/global/objectstore"
)

var (
	log      *slog.Logger
	uploader *objectstore.Store
)

type ModuleAdmin struct{}

func (m *ModuleAdmin) GetName() string {
	return "Admin"
}

func (m *ModuleAdmin) Init() {
	log = logger.New("Admin")

	cfg := config.Get().S3
	if !objectstore.Enabled(cfg) {
		return
	}
	store, err := objectstore.New(context.Background(), cfg)
	if err != nil {
		// 上传不可用时仍保留本地备份
		log.Error("初始化对象存储失败", "error", err)
		return
	}
	uploader = store
}
