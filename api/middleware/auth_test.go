package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	pkgAuth "github.com/petrocini/fast-sale-backend/pkg/auth"
	"github.com/petrocini/fast-sale-backend/pkg/config"
)

var middlewareJWTConfig = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "fastsale-test",
	ExpirationMinutes: 15,
}

type stubChecker struct {
	live map[string]bool
}

func (s *stubChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	return s.live[accessID], nil
}

func mintTestToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(middlewareJWTConfig, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	checker := &stubChecker{live: map[string]bool{"session-1": true}}
	token := mintTestToken(t, "session-1")

	var gotOperator, gotSession string
	handler := Auth(middlewareJWTConfig, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOperator = OperatorIDFromContext(r.Context())
		gotSession = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotOperator == "" {
		t.Fatal("expected operator id in context")
	}
	if gotSession != "session-1" {
		t.Fatalf("expected session id session-1, got %q", gotSession)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(middlewareJWTConfig, &stubChecker{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	checker := &stubChecker{live: map[string]bool{}}
	token := mintTestToken(t, "session-gone")

	handler := Auth(middlewareJWTConfig, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(middlewareJWTConfig, &stubChecker{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
