package dashboard

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestDashboardRequestsRejected(t *testing.T) {
	h := NewDashboardHandler(nil)
	app := fiber.New()
	app.Get("/dashboard/stats", h.GetStats)
	app.Post("/dashboard/students", h.CreateStudent)
	app.Get("/dashboard/activities", h.ListActivities)
	app.Post("/dashboard/activities", h.CreateActivity)
	app.Put("/dashboard/activities/:id", h.UpdateActivity)
	app.Get("/dashboard/messages", h.ListMessages)
	app.Post("/dashboard/messages", h.CreateMessage)
	app.Patch("/dashboard/messages/:id/read", h.MarkRead)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"stats weeks too large", "GET", "/dashboard/stats?weeks=53", "", fiber.StatusBadRequest},
		{"stats weeks zero", "GET", "/dashboard/stats?weeks=0", "", fiber.StatusBadRequest},
		{"student bad email", "POST", "/dashboard/students", `{"name":"Ana Torres","email":"ana"}`, fiber.StatusUnprocessableEntity},
		{"student grade over 100", "POST", "/dashboard/students", `{"name":"Ana Torres","email":"ana@example.com","average_grade":101}`, fiber.StatusUnprocessableEntity},
		{"student unknown status", "POST", "/dashboard/students", `{"name":"Ana Torres","email":"ana@example.com","status":"paused"}`, fiber.StatusBadRequest},
		{"activity unknown category", "POST", "/dashboard/activities", `{"title":"Informe","category":"homework"}`, fiber.StatusBadRequest},
		{"activity missing category", "POST", "/dashboard/activities", `{"title":"Informe"}`, fiber.StatusUnprocessableEntity},
		{"activity status with wrong dash", "POST", "/dashboard/activities", `{"title":"Informe","category":"tarea","status":"in_progress"}`, fiber.StatusBadRequest},
		{"activity clear and set student", "PUT", "/dashboard/activities/3", `{"student_id":2,"clear_student":true}`, fiber.StatusUnprocessableEntity},
		{"activity filter unknown priority", "GET", "/dashboard/activities?priority=urgent", "", fiber.StatusBadRequest},
		{"message missing subject", "POST", "/dashboard/messages", `{"sender":"Coordinacion","content":"Hola"}`, fiber.StatusUnprocessableEntity},
		{"message unknown priority", "POST", "/dashboard/messages", `{"sender":"Coordinacion","subject":"Aviso","content":"Hola","priority":"critical"}`, fiber.StatusBadRequest},
		{"messages bad unread filter", "GET", "/dashboard/messages?unread=maybe", "", fiber.StatusBadRequest},
		{"mark read bad id", "PATCH", "/dashboard/messages/abc/read", `{"read":true}`, fiber.StatusBadRequest},
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
