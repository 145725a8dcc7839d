package model

import "time"

// Enrollment 用户与活动的报名关系，(user_id, activity_id) 唯一
type Enrollment struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ActivityID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"activity_id"`
	EnrolledAt time.Time `gorm:"autoCreateTime;not null" json:"enrolled_at"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Models 需要自动迁移的模型，顺序即依赖顺序
func Models() []any {
	return []any{
		&User{},
		&Activity{},
		&Enrollment{},
	}
}
