package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager(t *testing.T, secret, alg string) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(secret, alg, 7*24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newTestJWTManager(t, "secret", "HS256")

	token, err := m.GenerateToken(42, "alice", true)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "42", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTManager_Expired(t *testing.T) {
	m := newTestJWTManager(t, "secret", "HS256")
	m.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, err := m.GenerateToken(1, "alice", false)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := newTestJWTManager(t, "secret", "HS256").GenerateToken(1, "alice", false)
	require.NoError(t, err)

	_, err = newTestJWTManager(t, "other", "HS256").ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestJWTManager_TamperedPayload(t *testing.T) {
	m := newTestJWTManager(t, "secret", "HS256")

	userToken, err := m.GenerateToken(1, "alice", false)
	require.NoError(t, err)
	adminToken, err := m.GenerateToken(2, "root", true)
	require.NoError(t, err)

	// 把管理员的payload拼到普通用户的签名上
	userParts := strings.Split(userToken, ".")
	adminParts := strings.Split(adminToken, ".")
	forged := userParts[0] + "." + adminParts[1] + "." + userParts[2]

	_, err = m.ValidateToken(forged)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestJWTManager_WrongAlgorithm(t *testing.T) {
	token, err := newTestJWTManager(t, "secret", "HS512").GenerateToken(1, "alice", false)
	require.NoError(t, err)

	_, err = newTestJWTManager(t, "secret", "HS256").ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTManager(t, "secret", "HS256").ValidateToken(unsigned)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestNewJWTManager_RejectsNonHMAC(t *testing.T) {
	_, err := NewJWTManager("secret", "RS256", time.Hour)
	assert.Error(t, err)

	_, err = NewJWTManager("secret", "nope", time.Hour)
	assert.Error(t, err)
}
