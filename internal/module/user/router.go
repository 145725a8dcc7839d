package user

import (
	"activity-signup/internal/global/middleware"
	"activity-signup/internal/model"

	"github.com/gin-gonic/gin"
)

// InitRouter 用户相关端点以 /users 为前缀，均需登录
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/users")

	userGroup.GET("/:email", middleware.Auth(model.RoleStudent), GetUser)

	userGroup.Use(middleware.Auth(model.RoleAdmin))
	{
		userGroup.POST("", CreateUser)
		userGroup.DELETE("/:email", DeleteUser)
	}
}
