package health

import (
	"context"
	"time"

	"activity-signup/internal/global/database"
	"activity-signup/internal/global/response"
	"activity-signup/internal/store"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

func (p *ModuleHealth) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"version": Version,
		})
	})
	r.GET("/health", Health)
}

// Health 数据库不可用时返回 503
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	stats, err := store.GetStats(ctx, database.DB)
	if err != nil {
		log.Error("健康检查失败", "error", err)
		response.Fail(c, response.ErrUnavailable.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{
		"status":      "healthy",
		"database":    "connected",
		"activities":  stats.Activities,
		"users":       stats.Users,
		"enrollments": stats.Enrollments,
	})
}
