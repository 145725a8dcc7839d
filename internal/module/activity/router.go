package activity

import (
	"activity-signup/internal/global/middleware"
	"activity-signup/internal/model"

	"github.com/gin-gonic/gin"
)

func (p *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	// 所有活动相关端点以 /activities 为前缀
	activityGroup := r.Group("/activities")
	{
		activityGroup.GET("", ListActivities)
		activityGroup.GET("/:name", GetActivity)

		// 报名与取消报名只需要邮箱
		activityGroup.POST("/:name/signup", Signup)
		activityGroup.DELETE("/:name/unregister", Unregister)
	}

	activityGroup.POST("", middleware.Auth(model.RoleTeacher), CreateActivity)
	activityGroup.DELETE("/:name", middleware.Auth(model.RoleAdmin), DeleteActivity)
}
