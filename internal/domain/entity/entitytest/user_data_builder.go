// Package entitytest builds valid entity props for tests and seeding.
package entitytest

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/oksasatya/go-user-validation/internal/domain/entity"
)

// UserDataBuilder returns valid user props. Non-zero fields of overrides are kept as-is.
func UserDataBuilder(overrides entity.UserProps) entity.UserProps {
	p := overrides
	if p.Name == "" {
		p.Name = gofakeit.Name()
	}
	if p.Email == "" {
		p.Email = strings.ToLower(gofakeit.LetterN(12)) + "@example.com"
	}
	if p.Password == "" {
		p.Password = gofakeit.Password(true, true, true, false, false, 10)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return p
}
