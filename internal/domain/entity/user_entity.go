package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-validation/pkg/validation"
)

// UserProps is the state of a user. A zero CreatedAt means "not set".
type UserProps struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

// Fields converts props into a validation candidate.
func (p UserProps) Fields() validation.Fields {
	f := validation.Fields{
		FieldName:     p.Name,
		FieldEmail:    p.Email,
		FieldPassword: p.Password,
	}
	if p.ID != "" {
		f[FieldID] = p.ID
	}
	if !p.CreatedAt.IsZero() {
		f[FieldCreatedAt] = p.CreatedAt
	}
	return f
}

var defaultUserValidator = NewUserValidator()

// User is the aggregate root for the user domain.
// Its props always satisfy the user rule table; mutators validate before assigning.
type User struct {
	validator *UserValidator
	props     UserProps
}

// NewUser validates props and builds a user, assigning an ID and creation time when missing.
func NewUser(props UserProps) (*User, error) {
	return NewUserWithValidator(defaultUserValidator, props)
}

// NewUserWithValidator is NewUser with a caller-supplied validator.
func NewUserWithValidator(v *UserValidator, props UserProps) (*User, error) {
	if v == nil {
		v = defaultUserValidator
	}
	res := v.ValidateProps(props)
	if !res.Valid {
		return nil, NewEntityValidationError(res.Errors)
	}
	p := *res.ValidatedData
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return &User{validator: v, props: p}, nil
}

func (u *User) ID() string           { return u.props.ID }
func (u *User) Name() string         { return u.props.Name }
func (u *User) Email() string        { return u.props.Email }
func (u *User) Password() string     { return u.props.Password }
func (u *User) CreatedAt() time.Time { return u.props.CreatedAt }

// Props returns a copy of the current state.
func (u *User) Props() UserProps { return u.props }

// UpdateName replaces the name. On error the previous name is kept.
func (u *User) UpdateName(name string) error {
	next := u.props
	next.Name = name
	return u.apply(next)
}

// UpdatePassword replaces the password. On error the previous password is kept.
func (u *User) UpdatePassword(password string) error {
	next := u.props
	next.Password = password
	return u.apply(next)
}

func (u *User) apply(next UserProps) error {
	res := u.validator.ValidateProps(next)
	if !res.Valid {
		return NewEntityValidationError(res.Errors)
	}
	u.props = next
	return nil
}

type userJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarshalJSON omits the password.
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userJSON{
		ID:        u.props.ID,
		Name:      u.props.Name,
		Email:     u.props.Email,
		CreatedAt: u.props.CreatedAt,
	})
}
