package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManagerWithClock("test-secret", 2*time.Hour, func() time.Time { return fixedTime })

	token, exp, err := tm.Generate("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, fixedTime.Add(2*time.Hour).Unix(), exp.Unix())

	email, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestTokenValidateFailures(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 2 * time.Hour

	tests := []struct {
		name  string
		setup func(t *testing.T) (*TokenManager, string)
	}{
		{
			name: "expired token",
			setup: func(t *testing.T) (*TokenManager, string) {
				issuer := NewTokenManagerWithClock("secret", ttl, func() time.Time { return fixedTime })
				token, _, err := issuer.Generate("alice@example.com")
				require.NoError(t, err)
				// validate after expiry, revocation state is irrelevant
				validator := NewTokenManagerWithClock("secret", ttl, func() time.Time {
					return fixedTime.Add(ttl + time.Minute)
				})
				return validator, token
			},
		},
		{
			name: "wrong signing key",
			setup: func(t *testing.T) (*TokenManager, string) {
				issuer := NewTokenManagerWithClock("secret-a", ttl, func() time.Time { return fixedTime })
				token, _, err := issuer.Generate("alice@example.com")
				require.NoError(t, err)
				validator := NewTokenManagerWithClock("secret-b", ttl, func() time.Time { return fixedTime })
				return validator, token
			},
		},
		{
			name: "malformed token",
			setup: func(t *testing.T) (*TokenManager, string) {
				tm := NewTokenManagerWithClock("secret", ttl, func() time.Time { return fixedTime })
				return tm, "not.a.token"
			},
		},
		{
			name: "empty token",
			setup: func(t *testing.T) (*TokenManager, string) {
				tm := NewTokenManagerWithClock("secret", ttl, func() time.Time { return fixedTime })
				return tm, ""
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tm, token := tc.setup(t)
			_, err := tm.Validate(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenValidJustBeforeExpiry(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 2 * time.Hour

	issuer := NewTokenManagerWithClock("secret", ttl, func() time.Time { return fixedTime })
	token, _, err := issuer.Generate("bob@example.com")
	require.NoError(t, err)

	validator := NewTokenManagerWithClock("secret", ttl, func() time.Time {
		return fixedTime.Add(ttl - time.Minute)
	})
	email, err := validator.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
}
