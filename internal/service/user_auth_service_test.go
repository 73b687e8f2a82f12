package service

import (
	"context"
	"testing"
	"time"

	"github.com/storefront-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()

	registered, err := f.auth.Register(ctx, RegisterInput{Email: " Alice@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", registered.User.Email)
	require.Equal(t, "alice", registered.User.DisplayName)
	require.NotEmpty(t, registered.Token)

	claims, err := f.auth.ParseUserJWT(registered.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, claims.UserID)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "alice@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrEmailExists)

	login, err := f.auth.Login(ctx, LoginInput{Email: "ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, login.User.ID)
	require.NotNil(t, login.User.LastLoginAt)

	_, err = f.auth.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong-pass1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "not-an-email", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "short1"})
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = f.auth.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "lettersonly"})
	require.ErrorIs(t, err, ErrWeakPassword)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "error.password_require_number", domainErr.Key())
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	staff := f.createUser(t, "staff@example.com", true)

	registered, err := f.auth.Register(ctx, RegisterInput{Email: "carol@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.auth.UpdateStatus(ctx, staff, registered.User.ID, "DISABLED")
	require.NoError(t, err)
	_, err = f.auth.Login(ctx, LoginInput{Email: "carol@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrUserDisabled)

	_, err = f.auth.UpdateStatus(ctx, staff, registered.User.ID, "frozen")
	require.ErrorIs(t, err, ErrUserStatusInvalid)
}

func TestSetStaffRequiresStaffActor(t *testing.T) {
	f := newStorefrontFixture(t)
	ctx := context.Background()
	staff := f.createUser(t, "staff@example.com", true)
	user := f.createUser(t, "dave@example.com", false)

	_, err := f.auth.SetStaff(ctx, user, user.UserID, true)
	require.ErrorIs(t, err, ErrStaffRequired)

	promoted, err := f.auth.SetStaff(ctx, staff, user.UserID, true)
	require.NoError(t, err)
	require.True(t, promoted.IsStaff)

	_, err = f.auth.SetStaff(ctx, staff, 9999, true)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true, RequireSpecial: true}
	require.NoError(t, validatePassword(policy, "Abcdef1!"))
	require.ErrorIs(t, validatePassword(policy, "Abc1!"), ErrWeakPassword)
	require.ErrorIs(t, validatePassword(policy, "abcdef1!"), ErrWeakPassword)
	require.ErrorIs(t, validatePassword(policy, "Abcdefg!"), ErrWeakPassword)
	require.NoError(t, validatePassword(config.PasswordPolicyConfig{}, "x"))
}

func TestIsTokenRevoked(t *testing.T) {
	require.True(t, IsTokenRevoked(nil, 0, 0))
	claims := &UserJWTClaims{UserID: 1, TokenVersion: 1}
	require.False(t, IsTokenRevoked(claims, 1, 0))
	require.True(t, IsTokenRevoked(claims, 2, 0))

	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	require.False(t, IsTokenRevoked(claims, 1, now.Add(-time.Minute).Unix()))
	require.True(t, IsTokenRevoked(claims, 1, now.Add(time.Minute).Unix()))

	claims.IssuedAt = nil
	require.True(t, IsTokenRevoked(claims, 1, now.Unix()))
}
