package application_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-user-validation/internal/application"
	"github.com/oksasatya/go-user-validation/internal/domain/entity"
	"github.com/oksasatya/go-user-validation/internal/domain/entity/entitytest"
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDecodeFields(t *testing.T) {
	svc := application.NewUserService(newLogger())

	t.Run("object with timestamp", func(t *testing.T) {
		f, err := svc.DecodeFields([]byte(`{"name":"Ana","email":"ana@example.com","password":"secret","createdAt":"2024-01-02T03:04:05Z"}`))

		require.NoError(t, err)
		assert.Equal(t, "Ana", f[entity.FieldName])
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), f[entity.FieldCreatedAt])
	})

	t.Run("unparseable createdAt stays a string", func(t *testing.T) {
		f, err := svc.DecodeFields([]byte(`{"createdAt":"2024"}`))

		require.NoError(t, err)
		assert.Equal(t, "2024", f[entity.FieldCreatedAt])
	})

	t.Run("null", func(t *testing.T) {
		f, err := svc.DecodeFields([]byte(`null`))

		require.NoError(t, err)
		assert.Nil(t, f)
	})

	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{name: "empty", payload: "  ", wantMsg: "payload is empty"},
		{name: "malformed", payload: `{"name":`, wantMsg: "payload must be a JSON object"},
		{name: "array", payload: `[1,2]`, wantMsg: "payload must be a JSON object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DecodeFields([]byte(tt.payload))

			var verr *entity.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestRegisterFields(t *testing.T) {
	svc := application.NewUserService(newLogger())
	ctx := context.Background()

	t.Run("non-string name", func(t *testing.T) {
		f, err := svc.DecodeFields([]byte(`{"name":10,"email":"ana@example.com","password":"secret"}`))
		require.NoError(t, err)

		u, err := svc.RegisterFields(ctx, f)

		assert.Nil(t, u)
		var verr *entity.EntityValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{
			"name must be a string",
			"name must be shorter than or equal to 255 characters",
		}, verr.Errors[entity.FieldName])
	})

	t.Run("non-string id", func(t *testing.T) {
		f, err := svc.DecodeFields([]byte(`{"id":5,"name":"Ana","email":"ana@example.com","password":"secret"}`))
		require.NoError(t, err)

		u, err := svc.RegisterFields(ctx, f)

		assert.Nil(t, u)
		var verr *entity.EntityValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, map[string][]string{entity.FieldID: {"id must be a string"}}, map[string][]string(verr.Errors))
	})

	t.Run("nil candidate", func(t *testing.T) {
		_, err := svc.RegisterFields(ctx, nil)

		var verr *entity.EntityValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{entity.FieldEmail, entity.FieldName, entity.FieldPassword}, verr.Errors.Fields())
	})

	t.Run("valid", func(t *testing.T) {
		f, err := svc.DecodeFields([]byte(`{"id":"u-1","name":"Ana","email":"ana@example.com","password":"secret"}`))
		require.NoError(t, err)

		u, err := svc.RegisterFields(ctx, f)

		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID())
		assert.Equal(t, "secret", u.Password())
		assert.True(t, svc.VerifyPassword(u, "secret"))
		assert.False(t, svc.HashesPasswords())
	})
}

func TestRegister_PasswordHashing(t *testing.T) {
	svc := application.NewUserService(newLogger(), application.WithPasswordHashing(bcrypt.MinCost))
	ctx := context.Background()

	u, err := svc.Register(ctx, entitytest.UserDataBuilder(entity.UserProps{Password: "plain-secret"}))

	require.NoError(t, err)
	assert.True(t, svc.HashesPasswords())
	assert.NotEqual(t, "plain-secret", u.Password())
	assert.True(t, svc.VerifyPassword(u, "plain-secret"))
	assert.False(t, svc.VerifyPassword(u, "other"))

	t.Run("plaintext is validated before hashing", func(t *testing.T) {
		_, err := svc.Register(ctx, entitytest.UserDataBuilder(entity.UserProps{Password: strings.Repeat("a", 101)}))

		var verr *entity.EntityValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, entity.FieldPassword)
	})

	t.Run("passwords beyond bcrypt's 72 bytes", func(t *testing.T) {
		long := strings.Repeat("a", 100)

		lu, err := svc.Register(ctx, entitytest.UserDataBuilder(entity.UserProps{Password: long}))

		require.NoError(t, err)
		assert.True(t, svc.VerifyPassword(lu, long))
		assert.False(t, svc.VerifyPassword(lu, long[:72]))

		next := strings.Repeat("b", 80)
		require.NoError(t, svc.ChangePassword(ctx, lu, next))
		assert.True(t, svc.VerifyPassword(lu, next))
		assert.False(t, svc.VerifyPassword(lu, long))
	})

	t.Run("change password", func(t *testing.T) {
		before := u.Password()

		err := svc.ChangePassword(ctx, u, "")
		var verr *entity.EntityValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, before, u.Password())

		require.NoError(t, svc.ChangePassword(ctx, u, "next-secret"))
		assert.True(t, svc.VerifyPassword(u, "next-secret"))
		assert.False(t, svc.VerifyPassword(u, "plain-secret"))
	})
}

func TestChangePassword_Plain(t *testing.T) {
	svc := application.NewUserService(newLogger())
	ctx := context.Background()
	u, err := svc.Register(ctx, entitytest.UserDataBuilder(entity.UserProps{Password: "first"}))
	require.NoError(t, err)

	require.Error(t, svc.ChangePassword(ctx, u, strings.Repeat("a", 101)))
	assert.Equal(t, "first", u.Password())

	require.NoError(t, svc.ChangePassword(ctx, u, "second"))
	assert.Equal(t, "second", u.Password())
}

func TestRename(t *testing.T) {
	svc := application.NewUserService(newLogger())
	ctx := context.Background()
	u, err := svc.Register(ctx, entitytest.UserDataBuilder(entity.UserProps{Name: "Ana"}))
	require.NoError(t, err)

	require.Error(t, svc.Rename(ctx, u, ""))
	assert.Equal(t, "Ana", u.Name())

	require.NoError(t, svc.Rename(ctx, u, "Bea"))
	assert.Equal(t, "Bea", u.Name())
}

func TestNilUser(t *testing.T) {
	svc := application.NewUserService(nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Rename(ctx, nil, "x"), application.ErrNilUser)
	assert.ErrorIs(t, svc.ChangePassword(ctx, nil, "x"), application.ErrNilUser)
	assert.False(t, svc.VerifyPassword(nil, "x"))
}
