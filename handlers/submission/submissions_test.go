package submission

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
)

func TestDeliveryTimeFor(t *testing.T) {
	backdated := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)

	if got := deliveryTimeFor(true, &backdated); got != nil {
		t.Errorf("student delivery time = %v, want nil", got)
	}
	if got := deliveryTimeFor(false, &backdated); got == nil || !got.Equal(backdated) {
		t.Errorf("staff delivery time = %v, want %v", got, backdated)
	}
	if got := deliveryTimeFor(false, nil); got != nil {
		t.Errorf("staff without time = %v, want nil", got)
	}
}

func TestWriteModeFor(t *testing.T) {
	if writeModeFor(true) != services.OwnerWrite {
		t.Error("students must write as owners")
	}
	if writeModeFor(false) != services.StaffWrite {
		t.Error("staff must write as staff")
	}
}

// The handler has no services: every case must be answered before the store is used.
func TestSubmissionRequestsRejected(t *testing.T) {
	h := NewSubmissionHandler(nil, nil, 0)
	app := fiber.New()
	asStudent := func(c *fiber.Ctx) error {
		c.Locals("user_role", model.RoleStudent)
		return c.Next()
	}
	app.Post("/submissions", h.CreateSubmission)
	app.Get("/student/submissions", asStudent, h.ListSubmissions)
	app.Get("/student/submissions/:id", asStudent, h.GetSubmission)
	app.Get("/student/submissions/:id/grade", asStudent, h.GetGrade)
	app.Post("/student/submissions", asStudent, h.CreateSubmission)
	app.Delete("/student/submissions/:id", asStudent, h.DeleteSubmission)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"create malformed", "POST", "/submissions", `{"actividad_id":`, fiber.StatusBadRequest},
		{"create without enrollment", "POST", "/submissions", `{"actividad_id":1}`, fiber.StatusUnprocessableEntity},
		{"list bad filter", "GET", "/student/submissions?actividad_id=x", "", fiber.StatusBadRequest},
		{"student list without identity", "GET", "/student/submissions", "", fiber.StatusUnauthorized},
		{"student get without identity", "GET", "/student/submissions/4", "", fiber.StatusForbidden},
		{"student grade without identity", "GET", "/student/submissions/4/grade", "", fiber.StatusForbidden},
		{"student create without identity", "POST", "/student/submissions", `{"actividad_id":1,"inscripcion_id":2}`, fiber.StatusForbidden},
		{"student delete without identity", "DELETE", "/student/submissions/4", "", fiber.StatusForbidden},
		{"delete bad id", "DELETE", "/student/submissions/abc", "", fiber.StatusBadRequest},
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
