package admin

import (
	"activity-signup/internal/global/middleware"
	"activity-signup/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleAdmin) InitRouter(r *gin.RouterGroup) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.Auth(model.RoleAdmin))
	{
		adminGroup.GET("/backup", Backup)
		adminGroup.GET("/export", Export)
	}
}
