package store

import (
	"context"
	"time"

	"activity-signup/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var defaultActivities = []model.Activity{
	{Name: "Chess Club", Description: "Learn strategies and compete in chess tournaments", Schedule: "Fridays, 3:30 PM - 5:00 PM", MaxParticipants: 12},
	{Name: "Programming Class", Description: "Learn programming fundamentals and build software projects", Schedule: "Tuesdays and Thursdays, 3:30 PM - 4:30 PM", MaxParticipants: 20},
	{Name: "Gym Class", Description: "Physical education and sports activities", Schedule: "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", MaxParticipants: 30},
	{Name: "Soccer Team", Description: "Join the school soccer team and compete in matches", Schedule: "Tuesdays and Thursdays, 4:00 PM - 5:30 PM", MaxParticipants: 22},
	{Name: "Basketball Team", Description: "Practice and play basketball with the school team", Schedule: "Wednesdays and Fridays, 3:30 PM - 5:00 PM", MaxParticipants: 15},
	{Name: "Art Club", Description: "Explore your creativity through painting and drawing", Schedule: "Thursdays, 3:30 PM - 5:00 PM", MaxParticipants: 15},
	{Name: "Drama Club", Description: "Act, direct, and produce plays and performances", Schedule: "Mondays and Wednesdays, 4:00 PM - 5:30 PM", MaxParticipants: 20},
	{Name: "Math Club", Description: "Solve challenging problems and participate in math competitions", Schedule: "Tuesdays, 3:30 PM - 4:30 PM", MaxParticipants: 10},
	{Name: "Debate Team", Description: "Develop public speaking and argumentation skills", Schedule: "Fridays, 4:00 PM - 5:30 PM", MaxParticipants: 12},
}

// 初始报名：邮箱 -> 活动名
var defaultEnrollments = [][2]string{
	{"michael@mergington.edu", "Chess Club"},
	{"daniel@mergington.edu", "Chess Club"},
	{"emma@mergington.edu", "Programming Class"},
	{"sophia@mergington.edu", "Programming Class"},
	{"john@mergington.edu", "Gym Class"},
	{"olivia@mergington.edu", "Gym Class"},
	{"liam@mergington.edu", "Soccer Team"},
	{"noah@mergington.edu", "Soccer Team"},
	{"ava@mergington.edu", "Basketball Team"},
	{"mia@mergington.edu", "Basketball Team"},
	{"amelia@mergington.edu", "Art Club"},
	{"harper@mergington.edu", "Art Club"},
	{"ella@mergington.edu", "Drama Club"},
	{"scarlett@mergington.edu", "Drama Club"},
	{"james@mergington.edu", "Math Club"},
	{"benjamin@mergington.edu", "Math Club"},
	{"charlotte@mergington.edu", "Debate Team"},
	{"henry@mergington.edu", "Debate Team"},
}

// Seed 活动表为空时写入默认活动与初始报名，返回是否写入
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Activity{}).Count(&n).Error; err != nil {
			return errors.Wrap(err, "count activities")
		}
		if n > 0 {
			return nil
		}

		byName := make(map[string]uint, len(defaultActivities))
		for _, a := range defaultActivities {
			activity := a
			if err := tx.Create(&activity).Error; err != nil {
				return errors.Wrapf(err, "seed activity %s", a.Name)
			}
			byName[activity.Name] = activity.ID
		}

		for _, pair := range defaultEnrollments {
			user, err := firstOrCreateUser(tx, pair[0])
			if err != nil {
				return err
			}
			e := model.Enrollment{UserID: user.ID, ActivityID: byName[pair[1]]}
			if err := tx.Create(&e).Error; err != nil {
				return errors.Wrapf(err, "seed enrollment %s", pair[0])
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// BackfillTimestamps 补齐旧数据缺失的 created_at（NULL、零值或不晚于 unix 纪元），返回更新的行数
func BackfillTimestamps(ctx context.Context, db *gorm.DB) (int64, error) {
	now := time.Now()
	epoch := time.Unix(0, 0).UTC()
	var total int64
	for _, m := range []any{&model.User{}, &model.Activity{}} {
		res := db.WithContext(ctx).
			Model(m).
			Where("created_at IS NULL OR created_at <= ?", epoch).
			UpdateColumn("created_at", now)
		if res.Error != nil {
			return total, errors.Wrap(res.Error, "backfill created_at")
		}
		total += res.RowsAffected
	}
	return total, nil
}
