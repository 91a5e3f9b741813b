package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/contextutils"
	"vidtube/internal/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testAuth() *Auth {
	cfg := config.AuthConfig{JWTSecret: testSecret, Issuer: "vidtube"}
	return NewAuth(cfg, response.NewBuilder(nil, zap.NewNop()), zap.NewNop())
}

func signToken(t *testing.T, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "vidtube",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func echoUserHandler(t *testing.T, wantUserID int64, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		userID, ok := contextutils.GetUserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantUserID, userID)
	})
}

func TestRequireAcceptsValidToken(t *testing.T) {
	called := false
	handler := testAuth().Require(echoUserHandler(t, 42, &called))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "42", time.Hour))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRejectsMissingToken(t *testing.T) {
	called := false
	handler := testAuth().Require(echoUserHandler(t, 0, &called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRejectsExpiredToken(t *testing.T) {
	called := false
	handler := testAuth().Require(echoUserHandler(t, 42, &called))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "42", -time.Hour))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAllowsAnonymous(t *testing.T) {
	called := false
	handler := testAuth().Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := contextutils.GetUserID(r.Context())
		assert.False(t, ok)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalRejectsGarbageToken(t *testing.T) {
	called := false
	handler := testAuth().Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
