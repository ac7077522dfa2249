// internal/auth/token_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hethus/Bank-Control-API/internal/util"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue("ana@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := m.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "ana@x.com", subject)
}

func TestVerify_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue("ana@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestVerify_ExpiredTokenRejected(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, err := m.Issue("ana@x.com")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestVerify_GarbageRejected(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}
