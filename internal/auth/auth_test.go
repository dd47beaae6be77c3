package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewGateDefaults(t *testing.T) {
	g := NewGate("secret", 0, true)
	if g.ttl != 24*time.Hour {
		t.Errorf("Expected default ttl 24h, got %v", g.ttl)
	}
	if !g.Enabled() {
		t.Error("Expected gate to be enabled")
	}

	var nilGate *Gate
	if nilGate.Enabled() {
		t.Error("Expected nil gate to be disabled")
	}
}

func TestIssueAndValidate(t *testing.T) {
	g := NewGate("test-secret", time.Hour, true)

	token, err := g.Issue("frontend")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	subject, err := g.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if subject != "frontend" {
		t.Errorf("Expected subject 'frontend', got %q", subject)
	}
}

func TestIssueErrors(t *testing.T) {
	if _, err := NewGate("secret", time.Hour, true).Issue(" "); err == nil {
		t.Error("Expected error for empty subject")
	}
	if _, err := NewGate("", time.Hour, true).Issue("x"); err == nil {
		t.Error("Expected error for empty secret")
	}
}

func TestValidateRejects(t *testing.T) {
	g := NewGate("test-secret", time.Hour, true)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewGate("other-secret", time.Hour, true).Issue("x")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := g.Validate(other); err == nil {
			t.Error("Expected error for token signed with another secret")
		}
	})

	t.Run("expired", func(t *testing.T) {
		past := NewGate("test-secret", time.Minute, true)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := past.Issue("x")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := g.Validate(token); err == nil {
			t.Error("Expected error for expired token")
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := g.Validate(token); err == nil {
			t.Error("Expected error for foreign issuer")
		}
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := g.Validate(token); err == nil {
			t.Error("Expected error for unsigned token")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := g.Validate("not.a.token"); err == nil {
			t.Error("Expected error for malformed token")
		}
	})
}

func TestMiddleware(t *testing.T) {
	g := NewGate("test-secret", time.Hour, true)
	token, err := g.Issue("frontend")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := g.Middleware(next)

	tests := []struct {
		name        string
		setup       func(r *http.Request)
		wantStatus  int
		wantSubject string
	}{
		{name: "no token", setup: func(r *http.Request) {}, wantStatus: http.StatusUnauthorized},
		{
			name:        "bearer header",
			setup:       func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			wantStatus:  http.StatusOK,
			wantSubject: "frontend",
		},
		{
			name:        "cookie",
			setup:       func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: token}) },
			wantStatus:  http.StatusOK,
			wantSubject: "frontend",
		},
		{
			name:       "invalid token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject = ""
			req := httptest.NewRequest(http.MethodGet, "/search?query=x", nil)
			tt.setup(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if gotSubject != tt.wantSubject {
				t.Errorf("Expected subject %q, got %q", tt.wantSubject, gotSubject)
			}
			if rr.Code == http.StatusUnauthorized && !strings.Contains(rr.Body.String(), "message") {
				t.Errorf("Expected JSON message body, got %q", rr.Body.String())
			}
		})
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	g := NewGate("", 0, false)
	called := false
	handler := g.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search", nil))

	if !called {
		t.Error("Expected request to pass through a disabled gate")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
}
