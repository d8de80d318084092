package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func adminApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", AdminAuth(testSecret), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAdminAuth(t *testing.T) {
	validClaims := jwt.MapClaims{
		"sub":  "admin-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer " + signToken(t, validClaims, jwt.SigningMethodHS256, testSecret),
			wantStatus: 200,
		},
		{
			name:       "valid token in query param",
			query:      signToken(t, validClaims, jwt.SigningMethodHS256, testSecret),
			wantStatus: 200,
		},
		{
			name:       "missing token",
			wantStatus: 401,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, validClaims, jwt.SigningMethodHS256, "other-secret"),
			wantStatus: 401,
		},
		{
			name: "expired token",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"sub":  "admin-1",
				"role": "admin",
				"exp":  time.Now().Add(-time.Hour).Unix(),
			}, jwt.SigningMethodHS256, testSecret),
			wantStatus: 401,
		},
		{
			name: "non-admin role",
			header: "Bearer " + signToken(t, jwt.MapClaims{
				"sub":  "user-1",
				"role": "agent",
				"exp":  time.Now().Add(time.Hour).Unix(),
			}, jwt.SigningMethodHS256, testSecret),
			wantStatus: 403,
		},
		{
			name:       "malformed token",
			header:     "Bearer not.a.jwt",
			wantStatus: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := adminApp()

			target := "/admin"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest("GET", target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestAdminAuthPreflightSkipsAuth(t *testing.T) {
	app := fiber.New()
	app.Options("/admin", AdminAuth(testSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(204)
	})

	resp, err := app.Test(httptest.NewRequest("OPTIONS", "/admin", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 204 {
		t.Errorf("status = %d, want 204 without a token", resp.StatusCode)
	}
}
