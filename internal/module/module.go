package module

import (
	"activity-signup/internal/module/activity"
	"activity-signup/internal/module/admin"
	"activity-signup/internal/module/health"
	"activity-signup/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&health.ModuleHealth{},
		&activity.ModuleActivity{},
		&user.ModuleUser{},
		&admin.ModuleAdmin{},
	})
}
