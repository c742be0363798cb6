package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajput-vishal01/videovault/internal/models"
	"github.com/rajput-vishal01/videovault/internal/utils"
)

func newAuthService(users *userRepoStub) *AuthService {
	tm := utils.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tm, zap.NewNop().Sugar())
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(&userRepoStub{})

	_, err := svc.Register(context.Background(), "", "password1", "")
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.Register(context.Background(), "no-at-sign", "password1", "")
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.Register(context.Background(), "a@b.com", "short", "")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestRegisterHashesPassword(t *testing.T) {
	users := &userRepoStub{}
	svc := newAuthService(users)

	u, err := svc.Register(context.Background(), "Alice@Example.COM", "password1", " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice", u.Name)
	assert.NotEqual(t, "password1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password1")))
}

func TestLoginRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &userRepoStub{byEmail: &models.User{Email: "alice@example.com", PasswordHash: string(hash)}}
	svc := newAuthService(users)

	token, u, err := svc.Login(context.Background(), "alice@example.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", u.Email)

	claims, err := utils.NewTokenManager("test-secret", time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	users := &userRepoStub{byEmail: &models.User{Email: "alice@example.com", PasswordHash: string(hash)}}
	svc := newAuthService(users)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password1")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}
