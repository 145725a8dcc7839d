package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"activity-signup/config"
	"activity-signup/internal/global/database"
	"activity-signup/internal/global/httpclient"
	"activity-signup/internal/global/logger"
	"activity-signup/internal/global/middleware"
	internalOtel "activity-signup/internal/global/otel"
	"activity-signup/internal/global/rdb"
	"activity-signup/internal/global/sentry"
	"activity-signup/internal/module"
	"activity-signup/internal/store"
	"activity-signup/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")
	tools.PanicOnErr(checkConfig(config.Get()))

	if err := sentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}

	database.Init()
	log.Info("数据库已连接", "target", database.Source.Redacted())

	// 首次启动写入默认活动
	seeded, err := store.Seed(context.Background(), database.DB)
	tools.PanicOnErr(err)
	if seeded {
		log.Info("已写入初始活动数据")
	}

	if err := rdb.Init(); err != nil {
		// 没有 redis 只影响备份互斥
		log.Warn("Redis 不可用", "error", err)
	}

	httpclient.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		tools.PanicOnErr(internalOtel.Init(context.Background()))
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

// checkConfig release 模式缺少 JWT 密钥时拒绝启动，debug 模式只记录错误
func checkConfig(cfg *config.Config) error {
	err := cfg.Validate()
	if err == nil {
		return nil
	}
	if cfg.Mode == config.ModeRelease {
		return err
	}
	log.Error("配置不完整，需要登录的接口将全部返回 401", "error", err)
	return nil
}

// NewEngine 组装中间件与各模块路由
func NewEngine() *gin.Engine {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	r.Use(middleware.RequestID())
	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())
	r.Use(sentry.Middleware())
	r.Use(middleware.SentryEnrichIP())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	return r
}

// Run 收到 SIGINT/SIGTERM 后优雅退出
func Run() {
	srv := &http.Server{
		Addr:              net.JoinHostPort(config.Get().Host, config.Get().Port),
		Handler:           NewEngine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tools.PanicOnErr(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("服务关闭中")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务关闭失败", "error", err)
	}
	shutdown(ctx)
}

func shutdown(ctx context.Context) {
	if config.Get().OTel.Enable {
		if err := internalOtel.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown TracerProvider", "error", err)
		}
	}
	if rdb.Client != nil {
		_ = rdb.Client.Close()
	}
	if database.DB != nil {
		if err := database.Close(database.DB); err != nil {
			log.Error("关闭数据库失败", "error", err)
		}
	}
	sentry.Flush(2 * time.Second)
}
