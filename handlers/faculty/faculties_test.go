package faculty

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/utils/response"
)

// The handler has no service: every case must be rejected before the store is used.
func newTestApp() *fiber.App {
	h := NewFacultyHandler(nil)
	app := fiber.New()
	app.Get("/faculties/:id", h.GetFaculty)
	app.Post("/faculties", h.CreateFaculty)
	app.Put("/faculties/:id", h.UpdateFaculty)
	app.Delete("/faculties/:id", h.DeleteFaculty)
	return app
}

func TestFacultyRequestsRejected(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"malformed json", "POST", "/faculties", `{"codigo":`, fiber.StatusBadRequest, "BAD_REQUEST"},
		{"missing name", "POST", "/faculties", `{"codigo":"FI"}`, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"code too long", "POST", "/faculties", `{"codigo":"ABCDEFGHIJKLMNOPQRSTUVWXYZ","nombre":"Ingenieria"}`, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"update name too short", "PUT", "/faculties/1", `{"nombre":"I"}`, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"get bad id", "GET", "/faculties/abc", "", fiber.StatusBadRequest, "BAD_REQUEST"},
		{"update bad id", "PUT", "/faculties/0", `{"nombre":"Ingenieria"}`, fiber.StatusBadRequest, "BAD_REQUEST"},
		{"delete bad id", "DELETE", "/faculties/-1", "", fiber.StatusBadRequest, "BAD_REQUEST"},
	}

	app := newTestApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}

			var body response.Response
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Success || body.Error == nil || body.Error.Code != tt.code {
				t.Errorf("unexpected body: %+v", body)
			}
		})
	}
}
