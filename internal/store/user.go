package store

import (
	"context"
	"strings"

	"activity-signup/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserInput struct {
	Email     string
	Name      string
	Grade     string
	StudentID string
	Role      model.Role
}

// UserDetail 用户及其已报名的活动名
type UserDetail struct {
	model.User
	Activities []string `json:"activities"`
}

func CreateUser(ctx context.Context, db *gorm.DB, in UserInput) (*model.User, error) {
	user := &model.User{
		Email: in.Email,
		Name:  strings.TrimSpace(in.Name),
		Grade: strings.TrimSpace(in.Grade),
		Role:  in.Role,
	}
	if sid := strings.TrimSpace(in.StudentID); sid != "" {
		user.StudentID = &sid
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if _, ok := AsValidation(err); ok {
			return nil, err
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}

func GetUser(ctx context.Context, db *gorm.DB, email string) (*UserDetail, error) {
	email = model.NormalizeEmail(email)
	if err := model.ValidateEmail(email); err != nil {
		return nil, err
	}

	var user model.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}

	names := make([]string, 0)
	err := db.WithContext(ctx).
		Model(&model.Activity{}).
		Joins("JOIN enrollments ON enrollments.activity_id = activities.id").
		Where("enrollments.user_id = ?", user.ID).
		Order("activities.name").
		Pluck("activities.name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "list user activities")
	}
	return &UserDetail{User: user, Activities: names}, nil
}

// DeleteUser 删除用户及其报名记录，其创建的活动保留但 created_by 置空
func DeleteUser(ctx context.Context, db *gorm.DB, email string) error {
	email = model.NormalizeEmail(email)
	if err := model.ValidateEmail(email); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return errors.Wrap(err, "find user")
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Enrollment{}).Error; err != nil {
			return errors.Wrap(err, "delete enrollments")
		}
		if err := tx.Model(&model.Activity{}).
			Where("created_by = ?", user.ID).
			UpdateColumn("created_by", nil).Error; err != nil {
			return errors.Wrap(err, "detach activities")
		}
		if err := tx.Delete(&user).Error; err != nil {
			return errors.Wrap(err, "delete user")
		}
		return nil
	})
}

// EnsureUser 按邮箱获取或创建用户并设置角色，用于初始化管理员等账号
func EnsureUser(ctx context.Context, db *gorm.DB, email string, role model.Role) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if err := model.ValidateEmail(email); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, &model.ValidationError{Field: "role", Reason: "must be one of: student, teacher, admin"}
	}

	var user *model.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := firstOrCreateUser(tx, email)
		if err != nil {
			return err
		}
		if u.Role != role {
			if err := tx.Model(u).UpdateColumn("role", role).Error; err != nil {
				return errors.Wrap(err, "update role")
			}
			u.Role = role
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
