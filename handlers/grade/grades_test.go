package grade

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/utils/response"
)

func TestCreateGradeRequestValidation(t *testing.T) {
	h := NewGradeHandler(nil)

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"score missing", `{"entrega_id":7}`, true},
		{"score null", `{"entrega_id":7,"puntaje":null}`, true},
		{"negative score", `{"entrega_id":7,"puntaje":-1}`, true},
		{"submission missing", `{"puntaje":12}`, true},
		{"zero score", `{"entrega_id":7,"puntaje":0}`, false},
		{"above max score", `{"entrega_id":7,"puntaje":120.5}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateGradeRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatal(err)
			}
			err := h.validator.ValidateStruct(req)
			if tt.wantErr != (err != nil) {
				t.Errorf("ValidateStruct() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// The handler has no service: every case must be answered before the store is used.
func TestGradeRequestsRejected(t *testing.T) {
	h := NewGradeHandler(nil)
	app := fiber.New()
	asStudent := func(c *fiber.Ctx) error {
		c.Locals("user_role", model.RoleStudent)
		return c.Next()
	}
	app.Post("/grades", h.CreateGrade)
	app.Get("/student/grades", asStudent, h.ListGrades)
	app.Get("/student/grades/:id", asStudent, h.GetGrade)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"create without score", "POST", "/grades", `{"entrega_id":7}`, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"create negative score", "POST", "/grades", `{"entrega_id":7,"puntaje":-3}`, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"create malformed", "POST", "/grades", `{"puntaje":`, fiber.StatusBadRequest, "BAD_REQUEST"},
		{"student list without identity", "GET", "/student/grades", "", fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"student get without identity", "GET", "/student/grades/3", "", fiber.StatusUnauthorized, "UNAUTHORIZED"},
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
