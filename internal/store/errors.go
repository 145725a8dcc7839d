// Package store 报名系统的数据访问层，每个写操作都在单个事务内完成
package store

import (
	"errors"

	"activity-signup/internal/model"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotEnrolled      = errors.New("student is not signed up for this activity")
	ErrAlreadyEnrolled  = errors.New("student is already signed up")
	ErrActivityFull     = errors.New("activity is full")
	ErrActivityExists   = errors.New("activity already exists")
	ErrUserExists       = errors.New("user already exists")
)

// AsValidation 判断是否为字段校验错误
func AsValidation(err error) (*model.ValidationError, bool) {
	var verr *model.ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
