package activity

import (
	"fmt"
	"net/http"

	"activity-signup/internal/global/database"
	"activity-signup/internal/global/jwt"
	"activity-signup/internal/global/logger"
	"activity-signup/internal/global/response"
	"activity-signup/internal/model"
	"activity-signup/internal/store"

	"github.com/gin-gonic/gin"
)

// ActivityResp 活动及报名情况
type ActivityResp struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Schedule         string   `json:"schedule"`
	MaxParticipants  int      `json:"max_participants"`
	Participants     []string `json:"participants"`
	ParticipantCount int      `json:"participant_count"`
	AvailableSpots   int      `json:"available_spots"`
	IsFull           bool     `json:"is_full"`
}

func toResp(a *model.Activity) ActivityResp {
	return ActivityResp{
		Name:             a.Name,
		Description:      a.Description,
		Schedule:         a.Schedule,
		MaxParticipants:  a.MaxParticipants,
		Participants:     a.ParticipantEmails(),
		ParticipantCount: a.ParticipantCount(),
		AvailableSpots:   a.AvailableSpots(),
		IsFull:           a.IsFull(),
	}
}

// ActivityCreateReq 创建活动请求
type ActivityCreateReq struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Schedule        string `json:"schedule" binding:"required"`
	MaxParticipants int    `json:"max_participants" binding:"required"`
}

// fail 4xx 记 Warn，5xx 记 Error
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

// ListActivities 返回以活动名为 key 的 map
func ListActivities(c *gin.Context) {
	activities, err := store.ListActivities(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err, "获取活动列表失败")
		return
	}

	result := make(map[string]ActivityResp, len(activities))
	for i := range activities {
		result[activities[i].Name] = toResp(&activities[i])
	}
	response.Success(c, result)
}

func GetActivity(c *gin.Context) {
	name := c.Param("name")
	activity, err := store.GetActivity(c.Request.Context(), database.DB, name)
	if err != nil {
		fail(c, err, "获取活动失败", "activity", name)
		return
	}
	response.Success(c, toResp(activity))
}

// Signup 处理报名请求
func Signup(c *gin.Context) {
	name := c.Param("name")
	email := c.Query("email")
	if email == "" {
		response.Fail(c, response.ErrInvalidEmail.WithTips("Email is required"))
		return
	}

	if _, err := store.Enroll(c.Request.Context(), database.DB, name, email); err != nil {
		fail(c, err, "报名失败", "activity", name, "email", email)
		return
	}

	email = model.NormalizeEmail(email)
	logger.WithContext(log, c).Info("报名成功", "activity", name, "email", email)
	response.Success(c, gin.H{
		"message": fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

// Unregister 处理取消报名请求
func Unregister(c *gin.Context) {
	name := c.Param("name")
	email := c.Query("email")
	if email == "" {
		response.Fail(c, response.ErrInvalidEmail.WithTips("Email is required"))
		return
	}

	if err := store.Unregister(c.Request.Context(), database.DB, name, email); err != nil {
		fail(c, err, "取消报名失败", "activity", name, "email", email)
		return
	}

	email = model.NormalizeEmail(email)
	logger.WithContext(log, c).Info("取消报名成功", "activity", name, "email", email)
	response.Success(c, gin.H{
		"message": fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

// CreateActivity 教师及以上可创建活动
func CreateActivity(c *gin.Context) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ActivityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	createdBy := payload.UserID
	activity, err := store.CreateActivity(c.Request.Context(), database.DB, store.ActivityInput{
		Name:            req.Name,
		Description:     req.Description,
		Schedule:        req.Schedule,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       &createdBy,
	})
	if err != nil {
		fail(c, err, "创建活动失败", "name", req.Name)
		return
	}

	log.Info("活动创建成功", "name", activity.Name, "created_by", payload.Email)
	response.Success(c, toResp(activity))
}

// DeleteActivity 管理员删除活动，报名记录一并删除
func DeleteActivity(c *gin.Context) {
	name := c.Param("name")
	removed, err := store.DeleteActivity(c.Request.Context(), database.DB, name)
	if err != nil {
		fail(c, err, "删除活动失败", "activity", name)
		return
	}

	log.Info("活动删除成功", "activity", name, "enrollments_removed", removed)
	response.Success(c, gin.H{
		"message":             fmt.Sprintf("Deleted %s", name),
		"enrollments_removed": removed,
	})
}
