// handler/auth_middleware_test.go
package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/config"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T, userID int, secret string, ttl time.Duration) string {
	t.Helper()
	claims := &model.AppClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	config.AppConfig.JWT.AccessSecret = "test-access-secret"
	config.AppConfig.JWT.RefreshSecret = "test-refresh-secret"

	var gotUserID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(UserIDKey).(int)
		w.WriteHeader(http.StatusOK)
	})
	guarded := AuthMiddleware(next)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/transactions", nil)
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/transactions", nil)
		req.Header.Set("Authorization", "Token abc")
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		token := signTestToken(t, 7, "some-other-secret", time.Minute)
		req := httptest.NewRequest("GET", "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("refresh token cannot pass the access guard", func(t *testing.T) {
		token := signTestToken(t, 7, config.AppConfig.JWT.RefreshSecret, time.Minute)
		req := httptest.NewRequest("GET", "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signTestToken(t, 7, config.AppConfig.JWT.AccessSecret, -time.Minute)
		req := httptest.NewRequest("GET", "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("valid token attaches user id to context", func(t *testing.T) {
		token := signTestToken(t, 7, config.AppConfig.JWT.AccessSecret, time.Minute)
		req := httptest.NewRequest("GET", "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		guarded.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 7, gotUserID)
	})
}
