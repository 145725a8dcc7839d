package store

import (
	"context"

	"activity-signup/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityInput struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	CreatedBy       *uint
}

// withParticipants 预加载报名记录及对应用户，列表查询固定三条 SQL
func withParticipants(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Enrollments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("enrolled_at, user_id")
		}).
		Preload("Enrollments.User")
}

func ListActivities(ctx context.Context, db *gorm.DB) ([]model.Activity, error) {
	var activities []model.Activity
	err := db.WithContext(ctx).
		Scopes(withParticipants).
		Order("name").
		Find(&activities).Error
	if err != nil {
		return nil, errors.Wrap(err, "list activities")
	}
	return activities, nil
}

func GetActivity(ctx context.Context, db *gorm.DB, name string) (*model.Activity, error) {
	var activity model.Activity
	err := db.WithContext(ctx).
		Scopes(withParticipants).
		Where("name = ?", name).
		First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, errors.Wrap(err, "get activity")
	}
	return &activity, nil
}

func CreateActivity(ctx context.Context, db *gorm.DB, in ActivityInput) (*model.Activity, error) {
	activity := &model.Activity{
		Name:            in.Name,
		Description:     in.Description,
		Schedule:        in.Schedule,
		MaxParticipants: in.MaxParticipants,
		CreatedBy:       in.CreatedBy,
	}
	if err := db.WithContext(ctx).Create(activity).Error; err != nil {
		if _, ok := AsValidation(err); ok {
			return nil, err
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrActivityExists
		}
		// created_by 指向的用户已被删除
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "create activity")
	}
	return activity, nil
}

// DeleteActivity 删除活动及其全部报名记录，返回被删除的报名数
func DeleteActivity(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var removed int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := findActivity(tx, name, true)
		if err != nil {
			return err
		}
		res := tx.Where("activity_id = ?", activity.ID).Delete(&model.Enrollment{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete enrollments")
		}
		removed = res.RowsAffected
		if err := tx.Delete(activity).Error; err != nil {
			return errors.Wrap(err, "delete activity")
		}
		return nil
	})
	return removed, err
}

// findActivity 事务内按名称查找；lock 为 true 时在支持的方言上加行锁
func findActivity(tx *gorm.DB, name string, lock bool) (*model.Activity, error) {
	q := tx.Where("name = ?", name)
	if lock && tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var activity model.Activity
	if err := q.First(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, errors.Wrap(err, "find activity")
	}
	return &activity, nil
}
