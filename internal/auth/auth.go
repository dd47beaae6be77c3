// Package auth gates the search API behind HS256 bearer tokens when enabled.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SubjectContextKey ContextKey = "subject"

// CookieName is checked when no Authorization header is sent.
const CookieName = "auth_token"

const issuer = "transcriptsearch"

type Claims struct {
	jwt.RegisteredClaims
}

// Gate issues and checks tokens. A disabled Gate lets every request through.
type Gate struct {
	secret  []byte
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// NewGate creates a Gate signing with secret. ttl <= 0 means 24h.
func NewGate(secret string, ttl time.Duration, enabled bool) *Gate {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gate{
		secret:  []byte(secret),
		ttl:     ttl,
		enabled: enabled,
		now:     time.Now,
	}
}

// Enabled returns whether authentication is enforced
func (g *Gate) Enabled() bool {
	return g != nil && g.enabled
}

// Issue creates a token for subject that expires after the gate's TTL.
func (g *Gate) Issue(subject string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("subject is required")
	}
	if len(g.secret) == 0 {
		return "", errors.New("jwt secret is not set")
	}
	now := g.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Validate parses tokenString and returns its subject.
func (g *Gate) Validate(tokenString string) (string, error) {
	if len(g.secret) == 0 {
		return "", errors.New("jwt secret is not set")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(g.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// Middleware rejects requests without a valid token when the gate is
// enabled, and stores the token subject in the request context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			writeUnauthorized(w, "Authentication required")
			return
		}

		subject, err := g.Validate(tokenString)
		if err != nil {
			writeUnauthorized(w, "Invalid authentication token")
			return
		}

		ctx := context.WithValue(r.Context(), SubjectContextKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SubjectFromContext returns the authenticated subject, or "".
func SubjectFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(SubjectContextKey).(string); ok {
		return s
	}
	return ""
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="transcriptsearch"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
