package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"vidtube/internal/config"
	"vidtube/internal/contextutils"
	"vidtube/internal/response"
	"vidtube/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Auth verifies bearer tokens and places the acting user's ID in the
// request context.
type Auth struct {
	cfg             config.AuthConfig
	responseBuilder *response.Builder
	logger          *zap.Logger
}

// NewAuth creates the auth middleware.
func NewAuth(cfg config.AuthConfig, responseBuilder *response.Builder, logger *zap.Logger) *Auth {
	return &Auth{cfg: cfg, responseBuilder: responseBuilder, logger: logger}
}

// Require rejects requests without a valid token.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.userFromRequest(r)
		if err != nil {
			a.responseBuilder.WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(contextutils.WithUserID(r.Context(), userID)))
	})
}

// Optional attaches the user when a valid token is present and lets the
// request through anonymously otherwise. A present-but-invalid token is
// still rejected so clients notice expired sessions.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := a.userFromRequest(r)
		if err != nil {
			a.responseBuilder.WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(contextutils.WithUserID(r.Context(), userID)))
	})
}

func (a *Auth) userFromRequest(r *http.Request) (int64, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return 0, services.NewAuthenticationError("missing authorization header")
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return 0, services.NewAuthenticationError("authorization header must use the Bearer scheme")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(a.cfg.JWTSecret), nil
		},
		jwt.WithIssuer(a.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		a.logger.Debug("token rejected", zap.Error(err))
		return 0, services.NewAuthenticationError("invalid or expired token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, services.NewAuthenticationError("invalid token subject")
	}
	return userID, nil
}
