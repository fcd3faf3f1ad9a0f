package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestLockoutFor(t *testing.T) {
	tests := []struct {
		attempts int64
		want     time.Duration
	}{
		{0, 0},
		{4, 0},
		{5, 2 * time.Minute},
		{9, 2 * time.Minute},
		{10, time.Hour},
		{24, time.Hour},
		{25, 24 * time.Hour},
		{100, 24 * time.Hour},
	}

	for _, tt := range tests {
		if got := LockoutFor(tt.attempts); got != tt.want {
			t.Errorf("LockoutFor(%d) = %v, want %v", tt.attempts, got, tt.want)
		}
	}
}

// Without Redis the protection is disabled rather than failing requests.
func TestNilBruteForceProtection(t *testing.T) {
	var b *BruteForceProtection

	app := fiber.New()
	app.Post("/login", b.Check(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusNoContent)
	}

	b.RecordFailedAttempt(context.Background(), "10.0.0.1", "ana@example.com")
	b.RecordSuccessfulAttempt(context.Background(), "10.0.0.1")
}
