package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-validation/internal/domain/entity"
	"github.com/oksasatya/go-user-validation/pkg/helpers"
	"github.com/oksasatya/go-user-validation/pkg/validation"
)

var ErrNilUser = errors.New("user is nil")

// UserService builds and mutates users on behalf of the command-line programs.
type UserService struct {
	Validator *entity.UserValidator
	Logger    *logrus.Logger

	hashPasswords bool
	bcryptCost    int
}

type Option func(*UserService)

// WithPasswordHashing stores bcrypt hashes instead of the validated plaintext.
func WithPasswordHashing(cost int) Option {
	return func(s *UserService) {
		s.hashPasswords = true
		s.bcryptCost = cost
	}
}

func NewUserService(logger *logrus.Logger, opts ...Option) *UserService {
	if logger == nil {
		logger = logrus.New()
	}
	s := &UserService{
		Validator: entity.NewUserValidator(),
		Logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashesPasswords reports whether stored passwords are bcrypt hashes.
func (s *UserService) HashesPasswords() bool { return s.hashPasswords }

// DecodeFields parses a JSON object into a validation candidate. createdAt strings that
// parse as timestamps become time.Time; anything else is left for the rules to reject.
// A JSON null yields a nil candidate.
func (s *UserService) DecodeFields(data []byte) (validation.Fields, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, entity.NewValidationError("payload is empty")
	}
	var fields validation.Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, entity.NewValidationError("payload must be a JSON object")
	}
	if raw, ok := fields[entity.FieldCreatedAt].(string); ok {
		if t, ok := helpers.ParseTime(raw); ok {
			fields[entity.FieldCreatedAt] = t
		}
	}
	return fields, nil
}

// Register builds a user from typed props.
func (s *UserService) Register(ctx context.Context, props entity.UserProps) (*entity.User, error) {
	u, err := entity.NewUserWithValidator(s.Validator, props)
	if err != nil {
		s.logRejected("register rejected", err, nil)
		return nil, err
	}
	if s.hashPasswords {
		if err := s.storeHash(u, props.Password); err != nil {
			return nil, err
		}
	}
	helpers.LogDebug(s.Logger, "user registered", logrus.Fields{"user_id": u.ID()})
	return u, nil
}

// RegisterFields validates a raw candidate and builds a user from the normalized data.
func (s *UserService) RegisterFields(ctx context.Context, candidate validation.Fields) (*entity.User, error) {
	res := s.Validator.Validate(candidate)
	if !res.Valid {
		err := entity.NewEntityValidationError(res.Errors)
		s.logRejected("register rejected", err, nil)
		return nil, err
	}
	return s.Register(ctx, *res.ValidatedData)
}

// Rename changes the user's name.
func (s *UserService) Rename(ctx context.Context, u *entity.User, name string) error {
	if u == nil {
		return ErrNilUser
	}
	if err := u.UpdateName(name); err != nil {
		s.logRejected("rename rejected", err, logrus.Fields{"user_id": u.ID()})
		return err
	}
	return nil
}

// ChangePassword validates the new plaintext and stores it, hashed when hashing is enabled.
// On error the previous password is kept.
func (s *UserService) ChangePassword(ctx context.Context, u *entity.User, plain string) error {
	if u == nil {
		return ErrNilUser
	}
	if !s.hashPasswords {
		if err := u.UpdatePassword(plain); err != nil {
			s.logRejected("password change rejected", err, logrus.Fields{"user_id": u.ID()})
			return err
		}
		return nil
	}
	next := u.Props()
	next.Password = plain
	if res := s.Validator.ValidateProps(next); !res.Valid {
		err := entity.NewEntityValidationError(res.Errors)
		s.logRejected("password change rejected", err, logrus.Fields{"user_id": u.ID()})
		return err
	}
	return s.storeHash(u, plain)
}

// VerifyPassword compares plain against the stored password.
func (s *UserService) VerifyPassword(u *entity.User, plain string) bool {
	if u == nil {
		return false
	}
	if s.hashPasswords {
		return helpers.CompareHashAndPassword(u.Password(), plain)
	}
	return u.Password() == plain
}

func (s *UserService) storeHash(u *entity.User, plain string) error {
	hash, err := helpers.HashPassword(plain, s.bcryptCost)
	if err != nil {
		helpers.LogError(s.Logger, "hash password failed", err, logrus.Fields{"user_id": u.ID()})
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.UpdatePassword(hash); err != nil {
		return fmt.Errorf("store password hash: %w", err)
	}
	return nil
}

func (s *UserService) logRejected(msg string, err error, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	var verr *entity.EntityValidationError
	if errors.As(err, &verr) {
		fields["fields"] = verr.Errors
	}
	helpers.LogInfo(s.Logger, msg, fields)
}
