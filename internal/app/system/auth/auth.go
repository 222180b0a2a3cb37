// internal/app/system/auth/auth.go

// Package auth implements bearer-token authentication for the API.
//
// Tokens are HS256 JWTs issued at login and carried in the Authorization
// header. There is no refresh flow: an expired token means the operator
// signs in again (the console persists the token across sessions and
// clears it on 401).
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gashatech/adminhub/internal/app/system/envelope"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionUser is what we decode from the bearer token and inject into
// r.Context().
type SessionUser struct {
	ID      string
	Name    string
	Email   string
	Role    string
	Modules []string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user directly into the request context.
// Test helper; bypasses token verification.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// Claims is the JWT payload for an access token.
type Claims struct {
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Role    string   `json:"role"`
	Modules []string `json:"modules,omitempty"`
	jwt.RegisteredClaims
}

var (
	// ErrInvalidToken is returned for malformed, forged, or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenManager issues and verifies bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager with the given signing secret
// and token lifetime.
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs an access token for the given user.
func (m *TokenManager) Issue(u SessionUser) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Modules: u.Modules,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Parse verifies a token string and returns the user it carries.
func (m *TokenManager) Parse(token string) (*SessionUser, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &SessionUser{
		ID:      claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Role:    claims.Role,
		Modules: claims.Modules,
	}, nil
}

// LoadBearerUser injects the user into context when a valid bearer token
// is present. Requests without an Authorization header pass through
// unauthenticated; RequireSignedIn decides whether that matters.
func (m *TokenManager) LoadBearerUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		u, err := m.Parse(token)
		if err != nil {
			envelope.Fail(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadBearerUser).
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			envelope.Fail(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the current user has one of the allowed roles.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				envelope.Fail(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, allowed := set[strings.ToLower(u.Role)]; !allowed {
				envelope.Fail(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LogAuthFailure records a failed sign-in attempt. Kept in one place so
// the log shape stays uniform across password and Google sign-in.
func LogAuthFailure(log *zap.Logger, email, reason string) {
	log.Warn("sign-in failed",
		zap.String("email", email),
		zap.String("reason", reason),
	)
}
