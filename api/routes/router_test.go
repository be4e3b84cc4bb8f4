package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petrocini/fast-sale-backend/pkg/config"
)

func testRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{
		Secret:            "secret",
		Issuer:            "fastsale-test",
		ExpirationMinutes: 15,
	}
	return NewRouter(Deps{Config: cfg})
}

func TestHealthLiveRoute(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-FastSale-Env"); got != "test" {
		t.Fatalf("expected env header, got %q", got)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter()

	targets := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/pos/cart/"},
		{http.MethodGet, "/api/v1/products/"},
		{http.MethodGet, "/api/v1/categories/"},
	}

	for _, target := range targets {
		req := httptest.NewRequest(target.method, target.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", target.method, target.path, rec.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
