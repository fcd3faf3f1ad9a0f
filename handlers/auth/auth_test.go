package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	authutil "github.com/sahilchouksey/academia-api/utils/auth"
)

func TestAuthRequestsRejected(t *testing.T) {
	jwtManager := authutil.NewJWTManager(authutil.JWTConfig{Secret: "test-secret"})
	access, err := jwtManager.GenerateAccessToken(authutil.Identity{UserID: 1, Email: "a@example.com", Role: "admin"})
	if err != nil {
		t.Fatal(err)
	}

	h := NewAuthHandler(nil, nil, jwtManager, nil)
	app := fiber.New()
	app.Post("/auth/login", h.Login)
	app.Post("/auth/refresh", h.RefreshToken)
	app.Post("/auth/logout", h.Logout)
	app.Get("/profile", h.GetProfile)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"login malformed", "POST", "/auth/login", `{"email":`, fiber.StatusBadRequest},
		{"login bad email", "POST", "/auth/login", `{"email":"admin","password":"secreto123"}`, fiber.StatusUnprocessableEntity},
		{"login missing password", "POST", "/auth/login", `{"email":"admin@example.com"}`, fiber.StatusUnprocessableEntity},
		{"refresh missing token", "POST", "/auth/refresh", `{}`, fiber.StatusUnprocessableEntity},
		{"refresh garbage", "POST", "/auth/refresh", `{"refresh_token":"abc.def.ghi"}`, fiber.StatusUnauthorized},
		{"refresh with access token", "POST", "/auth/refresh", `{"refresh_token":"` + access.Token + `"}`, fiber.StatusUnauthorized},
		{"logout without session", "POST", "/auth/logout", "", fiber.StatusUnauthorized},
		{"profile without session", "GET", "/profile", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}
