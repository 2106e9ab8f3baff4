package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-auth/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("user-123", domain.RoleFaculty)
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.SubjectID)
	require.Equal(t, domain.RoleFaculty, claims.Role)
}

func TestParseTokenFailureModes(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)

	t.Run("zero ttl is expired immediately", func(t *testing.T) {
		token, _, err := tm.GenerateTokenWithTTL("user-123", domain.RoleStudent, 0)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("tampered signature", func(t *testing.T) {
		token, _, err := tm.GenerateToken("user-123", domain.RoleStudent)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err = tm.ParseToken(tampered)
		require.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", 60)
		token, _, err := other.GenerateToken("user-123", domain.RoleAdmin)
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		require.ErrorIs(t, err, ErrTokenSignatureInvalid)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := tm.ParseToken("not.a.token")
		require.ErrorIs(t, err, ErrTokenMalformed)

		_, err = tm.ParseToken("")
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("role outside the closed set", func(t *testing.T) {
		token, _, err := tm.GenerateToken("user-123", domain.Role("janitor"))
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		require.ErrorIs(t, err, ErrTokenMalformed)
	})
}
