package store

import (
	"context"
	"fmt"

	"activity-signup/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Stats struct {
	Activities  int64 `json:"activities"`
	Users       int64 `json:"users"`
	Enrollments int64 `json:"enrollments"`
}

// ErrUnavailable 数据库无法连接
var ErrUnavailable = errors.New("database unavailable")

// GetStats 先执行一次轻量查询确认连通，再统计三张表的行数
func GetStats(ctx context.Context, db *gorm.DB) (*Stats, error) {
	tx := db.WithContext(ctx)

	var one int
	if err := tx.Raw("SELECT 1").Scan(&one).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var s Stats
	counts := []struct {
		table any
		dest  *int64
	}{
		{&model.Activity{}, &s.Activities},
		{&model.User{}, &s.Users},
		{&model.Enrollment{}, &s.Enrollments},
	}
	for _, c := range counts {
		if err := tx.Model(c.table).Count(c.dest).Error; err != nil {
			return nil, errors.Wrap(err, "count rows")
		}
	}
	return &s, nil
}
