package user

import (
	"net/http"

	"activity-signup/internal/global/database"
	"activity-signup/internal/global/jwt"
	"activity-signup/internal/global/logger"
	"activity-signup/internal/global/response"
	"activity-signup/internal/model"
	"activity-signup/internal/store"

	"github.com/gin-gonic/gin"
)

// UserCreateReq 管理员创建用户，role 缺省为 student
type UserCreateReq struct {
	Email     string     `json:"email" binding:"required"`
	Name      string     `json:"name"`
	Grade     string     `json:"grade"`
	StudentID string     `json:"student_id"`
	Role      model.Role `json:"role"`
}

func fail(c *gin.Context, err error, msg string, args ...any) {
	e := response.FromStore(err)
	l := logger.WithContext(log, c)
	if e.HTTPStatus() >= http.StatusInternalServerError {
		l.Error(msg, append(args, "error", err)...)
	} else {
		l.Warn(msg, append(args, "error", err)...)
	}
	response.Fail(c, e)
}

func CreateUser(c *gin.Context) {
	var req UserCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定创建用户请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	user, err := store.CreateUser(c.Request.Context(), database.DB, store.UserInput{
		Email:     req.Email,
		Name:      req.Name,
		Grade:     req.Grade,
		StudentID: req.StudentID,
		Role:      req.Role,
	})
	if err != nil {
		fail(c, err, "创建用户失败", "email", req.Email)
		return
	}

	log.Info("用户创建成功", "email", user.Email, "role", user.Role)
	response.Success(c, user)
}

// GetUser 学生只能查看自己，教师及以上可查看任意用户
func GetUser(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	email := model.NormalizeEmail(c.Param("email"))
	if payload.Role.Level() < model.RoleTeacher.Level() && payload.Email != email {
		response.Fail(c, response.ErrForbidden)
		return
	}

	detail, err := store.GetUser(c.Request.Context(), database.DB, email)
	if err != nil {
		fail(c, err, "获取用户失败", "email", email)
		return
	}
	response.Success(c, detail)
}

func DeleteUser(c *gin.Context) {
	email := c.Param("email")
	if err := store.DeleteUser(c.Request.Context(), database.DB, email); err != nil {
		fail(c, err, "删除用户失败", "email", email)
		return
	}

	log.Info("用户删除成功", "email", email)
	response.Success(c, gin.H{"message": "Deleted " + model.NormalizeEmail(email)})
}
