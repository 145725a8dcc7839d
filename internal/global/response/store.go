package response

import (
	"errors"

	"activity-signup/internal/store"
)

var storeErrors = []struct {
	target error
	resp   *Error
}{
	{store.ErrActivityNotFound, ErrActivityNotFound},
	{store.ErrUserNotFound, ErrUserNotFound},
	{store.ErrNotEnrolled, ErrNotEnrolled},
	{store.ErrAlreadyEnrolled, ErrAlreadyEnrolled},
	{store.ErrActivityFull, ErrActivityFull},
	{store.ErrActivityExists, ErrActivityExists},
	{store.ErrUserExists, ErrUserExists},
	{store.ErrUnavailable, ErrUnavailable},
}

// FromStore 把数据层错误翻译成业务错误，未知错误按数据库错误处理
func FromStore(err error) *Error {
	if verr, ok := store.AsValidation(err); ok {
		if verr.Field == "email" {
			return ErrInvalidEmail
		}
		return ErrValidation.WithTips(verr.Error())
	}
	for _, m := range storeErrors {
		if errors.Is(err, m.target) {
			return m.resp
		}
	}
	return ErrDatabase.WithOrigin(err)
}
