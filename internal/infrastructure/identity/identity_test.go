// identity_test.go
package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-storage-api/config"
)

func signToken(t *testing.T, secret, subject string, exp time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(exp)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestLocalVerifier_Resolve(t *testing.T) {
	ctx := context.Background()
	v := NewLocalVerifier("test-secret")

	t.Run("valid token resolves to subject", func(t *testing.T) {
		userID, err := v.Resolve(ctx, signToken(t, "test-secret", "user-123", time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		_, err := v.Resolve(ctx, signToken(t, "other-secret", "user-123", time.Hour))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		_, err := v.Resolve(ctx, signToken(t, "test-secret", "user-123", -time.Minute))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject is rejected", func(t *testing.T) {
		_, err := v.Resolve(ctx, signToken(t, "test-secret", "", time.Hour))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := v.Resolve(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClient_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards token and returns user id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.Equal(t, "service-key", r.Header.Get("apikey"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user-123"}`))
		}))
		defer srv.Close()

		c := NewClient(zap.NewNop(), config.Auth{BaseURL: srv.URL, ServiceKey: "service-key"})
		userID, err := c.Resolve(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("provider rejection maps to ErrInvalidToken", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewClient(zap.NewNop(), config.Auth{BaseURL: srv.URL})
		_, err := c.Resolve(ctx, "bad-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := NewClient(zap.NewNop(), config.Auth{BaseURL: srv.URL})
		_, err := c.Resolve(ctx, "tok-1")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unreachable provider surfaces the transport error", func(t *testing.T) {
		c := NewClient(zap.NewNop(), config.Auth{BaseURL: "http://127.0.0.1:1"})
		_, err := c.Resolve(ctx, "tok-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNew_PicksResolver(t *testing.T) {
	t.Run("local verifier when secret set", func(t *testing.T) {
		r := New(zap.NewNop(), config.Auth{JWTSecret: "s"})
		_, ok := r.(*LocalVerifier)
		assert.True(t, ok)
	})

	t.Run("remote client otherwise", func(t *testing.T) {
		r := New(zap.NewNop(), config.Auth{BaseURL: "http://auth.local"})
		_, ok := r.(*Client)
		assert.True(t, ok)
	})
}
