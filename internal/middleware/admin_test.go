package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

const testSecret = "testsecret"

// buildTestApp wires a single protected route behind AdminAuth.
func buildTestApp() *echo.Echo {
	e := echo.New()
	e.DELETE("/v1/rooms/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, AdminAuth(testSecret))
	return e
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "tester",
		"role": role,
		"exp":  time.Now().Add(time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestAdminAuth(t *testing.T) {
	e := buildTestApp()

	// No token -> 401.
	req := httptest.NewRequest(http.MethodDelete, "/v1/rooms/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// Garbage token -> 401.
	req = httptest.NewRequest(http.MethodDelete, "/v1/rooms/1", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for malformed token, got %d", rec.Code)
	}

	// Valid signature but wrong role -> 403.
	req = httptest.NewRequest(http.MethodDelete, "/v1/rooms/1", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "CLIENT"))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin role, got %d", rec.Code)
	}

	// Admin role -> handler runs.
	req = httptest.NewRequest(http.MethodDelete, "/v1/rooms/1", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "ADMIN"))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", rec.Code)
	}
}

func TestAdminAuthAcceptsMintedTokens(t *testing.T) {
	tok, err := utils.NewAdminToken(testSecret, "ops", 5)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	e := buildTestApp()
	req := httptest.NewRequest(http.MethodDelete, "/v1/rooms/1", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected minted admin token to pass, got %d", rec.Code)
	}
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAdminToken("othersecret", "ops", 5)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	e := buildTestApp()
	req := httptest.NewRequest(http.MethodDelete, "/v1/rooms/1", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign signature, got %d", rec.Code)
	}
}
