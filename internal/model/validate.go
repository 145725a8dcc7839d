package model

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError 表示写库前的字段校验失败
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return Role(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("trimmed_min", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(strings.TrimSpace(fl.Field().String())) >= n
		})
	})
	return validate
}

// Validate 按 `validate` tag 校验结构体
func Validate(v any) error {
	return toValidationError(validatorInstance().Struct(v))
}

// ValidateEmail 单独校验邮箱格式
func ValidateEmail(email string) error {
	if err := validatorInstance().Var(email, "required,email,max=255"); err != nil {
		return &ValidationError{Field: "email", Reason: "invalid email format"}
	}
	return nil
}

// NormalizeEmail 邮箱统一去空白并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	return &ValidationError{Field: fieldName(fe.Field()), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email format"
	case "role":
		return "must be one of: student, teacher, admin"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min", "trimmed_min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	default:
		return "failed on " + fe.Tag()
	}
}

// fieldName 把 Go 字段名转成 snake_case，与 json 字段保持一致
func fieldName(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		upper := r >= 'A' && r <= 'Z'
		if upper {
			if prevLower {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		prevLower = !upper
		b.WriteRune(r)
	}
	return b.String()
}
