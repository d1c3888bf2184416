package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authProbe(configuredKey string, setHeaders func(*http.Request)) int {
	handler := AuthMiddleware(configuredKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setHeaders != nil {
		setHeaders(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing key is unauthorized", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, authProbe("secret", nil))
	})

	t.Run("wrong key is unauthorized", func(t *testing.T) {
		code := authProbe("secret", func(r *http.Request) {
			r.Header.Set(SensorKeyHeader, "other")
		})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("matching header key passes", func(t *testing.T) {
		code := authProbe("secret", func(r *http.Request) {
			r.Header.Set(SensorKeyHeader, "secret")
		})
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("bearer token passes", func(t *testing.T) {
		code := authProbe("secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer secret")
		})
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("bcrypt configured key verifies the presented secret", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
		require.NoError(t, err)

		code := authProbe(string(hash), func(r *http.Request) {
			r.Header.Set(SensorKeyHeader, "secret")
		})
		assert.Equal(t, http.StatusOK, code)

		code = authProbe(string(hash), func(r *http.Request) {
			r.Header.Set(SensorKeyHeader, "wrong")
		})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("empty configured key rejects everything", func(t *testing.T) {
		code := authProbe("", func(r *http.Request) {
			r.Header.Set(SensorKeyHeader, "")
		})
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1:1234"))
	assert.True(t, rl.Allow("10.0.0.1:1234"))
	assert.False(t, rl.Allow("10.0.0.1:1234"))

	// Other remotes keep their own window.
	assert.True(t, rl.Allow("10.0.0.2:1234"))
}
