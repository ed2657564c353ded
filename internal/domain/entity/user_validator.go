package entity

import (
	"time"

	"github.com/oksasatya/go-user-validation/pkg/validation"
)

// Candidate keys for user props.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldCreatedAt = "createdAt"
)

const (
	MaxNameLength     = 255
	MaxEmailLength    = 255
	MaxPasswordLength = 100
)

var userRules = []validation.Field{
	{Name: FieldID, Optional: true, Rules: []validation.Rule{
		validation.IsString(),
	}},
	{Name: FieldName, Rules: []validation.Rule{
		validation.NotEmpty(),
		validation.IsString(),
		validation.MaxLength(MaxNameLength),
	}},
	{Name: FieldEmail, Rules: []validation.Rule{
		validation.NotEmpty(),
		validation.IsString(),
		validation.MaxLength(MaxEmailLength),
		validation.IsEmail(),
	}},
	{Name: FieldPassword, Rules: []validation.Rule{
		validation.NotEmpty(),
		validation.IsString(),
		validation.MaxLength(MaxPasswordLength),
	}},
	{Name: FieldCreatedAt, Optional: true, Rules: []validation.Rule{
		validation.IsDate(),
	}},
}

// UserValidation is the outcome of a single Validate call.
type UserValidation struct {
	Valid         bool
	Errors        validation.FieldErrors
	ValidatedData *UserProps // nil unless Valid
}

// UserValidator checks candidates against the user rule table.
type UserValidator struct {
	rules *validation.Validator
}

// NewUserValidator returns a fresh validator. Results are returned per call, so one
// instance may be shared between goroutines.
func NewUserValidator() *UserValidator {
	return &UserValidator{rules: validation.New(userRules...)}
}

// Validate checks a raw candidate. A nil candidate reports every required field.
func (v *UserValidator) Validate(candidate validation.Fields) UserValidation {
	errs := v.rules.Validate(candidate)
	if !errs.Empty() {
		return UserValidation{Valid: false, Errors: errs}
	}
	props := propsFromFields(candidate)
	return UserValidation{Valid: true, Errors: errs, ValidatedData: &props}
}

// ValidateProps checks typed props.
func (v *UserValidator) ValidateProps(props UserProps) UserValidation {
	return v.Validate(props.Fields())
}

// propsFromFields assumes the candidate already passed the rule table.
func propsFromFields(c validation.Fields) UserProps {
	var p UserProps
	p.Name, _ = c[FieldName].(string)
	p.Email, _ = c[FieldEmail].(string)
	p.Password, _ = c[FieldPassword].(string)
	p.ID, _ = c[FieldID].(string)
	switch t := c[FieldCreatedAt].(type) {
	case time.Time:
		p.CreatedAt = t
	case *time.Time:
		if t != nil {
			p.CreatedAt = *t
		}
	}
	return p
}
