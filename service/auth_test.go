package service

import (
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-floodfill/domain"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Tr0mbone-Glacier-Quietly-81"

func TestAuth(t *testing.T) {
	repo := newMemOperatorRepo()
	tokenizer := &stubTokenizer{}
	auth, err := NewAuthService(repo, tokenizer)
	require.NoError(t, err)

	t.Run("Register", func(t *testing.T) {
		require.NoError(t, auth.Register("mouse_01", testPassword))
		op, err := repo.ByUsername("mouse_01")
		require.NoError(t, err)
		assert.True(t, op.VerifyPassword(testPassword))
	})

	t.Run("Register taken username", func(t *testing.T) {
		err := auth.Register("mouse_01", testPassword)
		assert.ErrorIs(t, err, i.ErrConflict)
	})

	t.Run("Register weak password", func(t *testing.T) {
		err := auth.Register("mouse_02", "12345")
		assert.ErrorIs(t, err, dmn.ErrWeakPassword)
	})

	t.Run("Sign in", func(t *testing.T) {
		op, token, err := auth.SignIn("mouse_01", testPassword)
		require.NoError(t, err)
		assert.Equal(t, "mouse_01", op.Username)
		assert.Equal(t, "token-mouse_01", token)
		assert.Equal(t, op.ID.String(), tokenizer.claims["operatorID"])
		assert.Equal(t, 24*time.Hour, tokenizer.ttl)
	})

	t.Run("Sign in with wrong password", func(t *testing.T) {
		_, _, err := auth.SignIn("mouse_01", "not-the-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Sign in unknown operator", func(t *testing.T) {
		_, _, err := auth.SignIn("nobody", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestNewAuthService(t *testing.T) {
	_, err := NewAuthService(nil, &stubTokenizer{})
	assert.ErrorIs(t, err, ErrNilDependency)
}
