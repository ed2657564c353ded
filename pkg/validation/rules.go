package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Rule is a single check in a field's chain.
type Rule interface {
	// Tag identifies the rule kind, e.g. "notempty" or "max".
	Tag() string
	Check(eng *validator.Validate, value any) bool
	Message(field string) string
}

type notEmptyRule struct{}

// NotEmpty fails for absent values and the empty string.
func NotEmpty() Rule { return notEmptyRule{} }

func (notEmptyRule) Tag() string { return "notempty" }

func (notEmptyRule) Check(_ *validator.Validate, value any) bool {
	if isAbsent(value) {
		return false
	}
	s, ok := value.(string)
	return !ok || s != ""
}

func (r notEmptyRule) Message(field string) string { return formatMessage(field, r.Tag(), "") }

type stringRule struct{}

// IsString fails unless the value is a Go string.
func IsString() Rule { return stringRule{} }

func (stringRule) Tag() string { return "string" }

func (stringRule) Check(_ *validator.Validate, value any) bool {
	_, ok := value.(string)
	return ok
}

func (r stringRule) Message(field string) string { return formatMessage(field, r.Tag(), "") }

type maxLengthRule struct{ max int }

// MaxLength fails unless the value is a string of at most n characters.
// Characters are counted as runes, so a character outside the BMP counts once, not as two UTF-16 units.
func MaxLength(n int) Rule { return maxLengthRule{max: n} }

func (maxLengthRule) Tag() string { return "max" }

func (r maxLengthRule) Check(eng *validator.Validate, value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return eng.Var(s, "max="+strconv.Itoa(r.max)) == nil
}

func (r maxLengthRule) Message(field string) string {
	return formatMessage(field, r.Tag(), strconv.Itoa(r.max))
}

type emailRule struct{}

// IsEmail fails unless the value is a string holding a valid email address.
func IsEmail() Rule { return emailRule{} }

func (emailRule) Tag() string { return "email" }

func (emailRule) Check(eng *validator.Validate, value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return eng.Var(s, "email") == nil
}

func (r emailRule) Message(field string) string { return formatMessage(field, r.Tag(), "") }

type dateRule struct{}

// IsDate fails unless the value is a time.Time or a non-nil *time.Time.
func IsDate() Rule { return dateRule{} }

func (dateRule) Tag() string { return "date" }

func (dateRule) Check(_ *validator.Validate, value any) bool {
	switch t := value.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	default:
		return false
	}
}

func (r dateRule) Message(field string) string { return formatMessage(field, r.Tag(), "") }

// isAbsent treats untyped nil and nil pointers alike.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func formatMessage(field, tag, param string) string {
	switch tag {
	case "notempty":
		return field + " should not be empty"
	case "string":
		return field + " must be a string"
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, param)
	case "email":
		return field + " must be an email"
	case "date":
		return field + " must be a Date instance"
	default:
		return field + " is invalid"
	}
}
