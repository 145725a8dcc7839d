package store

import (
	"context"

	"activity-signup/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Enroll 报名。用户不存在时按邮箱创建；任一步失败整个事务回滚，
// 包括本次新建的用户。
func Enroll(ctx context.Context, db *gorm.DB, activityName, email string) (*model.Enrollment, error) {
	email = model.NormalizeEmail(email)
	if err := model.ValidateEmail(email); err != nil {
		return nil, err
	}

	var enrollment *model.Enrollment
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := findActivity(tx, activityName, true)
		if err != nil {
			return err
		}
		user, err := firstOrCreateUser(tx, email)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&model.Enrollment{}).
			Where("user_id = ? AND activity_id = ?", user.ID, activity.ID).
			Count(&existing).Error; err != nil {
			return errors.Wrap(err, "check enrollment")
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		var enrolled int64
		if err := tx.Model(&model.Enrollment{}).
			Where("activity_id = ?", activity.ID).
			Count(&enrolled).Error; err != nil {
			return errors.Wrap(err, "count enrollments")
		}
		if enrolled >= int64(activity.MaxParticipants) {
			return ErrActivityFull
		}

		e := &model.Enrollment{UserID: user.ID, ActivityID: activity.ID}
		if err := tx.Create(e).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return errors.Wrap(err, "create enrollment")
		}
		enrollment = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Unregister 取消报名，没有对应报名记录时返回 ErrNotEnrolled
func Unregister(ctx context.Context, db *gorm.DB, activityName, email string) error {
	email = model.NormalizeEmail(email)
	if err := model.ValidateEmail(email); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := findActivity(tx, activityName, false)
		if err != nil {
			return err
		}
		var user model.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return errors.Wrap(err, "find user")
		}

		res := tx.Where("user_id = ? AND activity_id = ?", user.ID, activity.ID).Delete(&model.Enrollment{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete enrollment")
		}
		if res.RowsAffected == 0 {
			return ErrNotEnrolled
		}
		return nil
	})
}

// firstOrCreateUser 并发下两个请求可能同时创建同一邮箱，
// 用 ON CONFLICT DO NOTHING 避免在 postgres 上中断事务，再回查一次
func firstOrCreateUser(tx *gorm.DB, email string) (*model.User, error) {
	var user model.User
	err := tx.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "find user")
	}

	user = model.User{Email: email, Role: model.RoleStudent}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		if _, ok := AsValidation(err); ok {
			return nil, err
		}
		return nil, errors.Wrap(err, "create user")
	}
	if user.ID != 0 {
		return &user, nil
	}
	if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}
