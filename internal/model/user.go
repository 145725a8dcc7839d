package model

import (
	"strings"

	"gorm.io/gorm"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r.Level() >= 0
}

// Level 权限等级，越大权限越高，非法角色返回 -1
func (r Role) Level() int {
	switch r {
	case RoleStudent:
		return 0
	case RoleTeacher:
		return 1
	case RoleAdmin:
		return 2
	default:
		return -1
	}
}

type User struct {
	Model
	Email     string  `gorm:"type:varchar(255);uniqueIndex;not null;check:valid_email_format,email LIKE '%@%'" json:"email" validate:"required,email,max=255"`
	Name      string  `gorm:"type:varchar(255)" json:"name" validate:"max=255"`
	Grade     string  `gorm:"type:varchar(10)" json:"grade" validate:"max=10"`
	StudentID *string `gorm:"type:varchar(50);uniqueIndex" json:"student_id,omitempty" validate:"omitempty,max=50"`
	Role      Role    `gorm:"type:varchar(50);not null;default:student;check:valid_role,role IN ('student', 'teacher', 'admin')" json:"role" validate:"role"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeSave(*gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if u.StudentID != nil && strings.TrimSpace(*u.StudentID) == "" {
		u.StudentID = nil
	}
	return Validate(u)
}
