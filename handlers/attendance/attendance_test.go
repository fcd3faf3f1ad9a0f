package attendance

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestDate(t *testing.T) {
	got := time.Time(date("2026-04-07"))
	if got.Year() != 2026 || got.Month() != time.April || got.Day() != 7 {
		t.Errorf("date() = %v", got)
	}
}

func TestAttendanceRequestsRejected(t *testing.T) {
	h := NewAttendanceHandler(nil)
	app := fiber.New()
	app.Get("/attendance", h.ListAttendance)
	app.Post("/attendance", h.CreateAttendance)
	app.Put("/attendance/:id", h.UpdateAttendance)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"unknown status", "POST", "/attendance", `{"inscripcion_id":1,"fecha":"2026-04-07","estado":"Enfermo"}`, fiber.StatusBadRequest},
		{"status wrong case", "POST", "/attendance", `{"inscripcion_id":1,"fecha":"2026-04-07","estado":"presente"}`, fiber.StatusBadRequest},
		{"missing enrollment", "POST", "/attendance", `{"fecha":"2026-04-07","estado":"Presente"}`, fiber.StatusUnprocessableEntity},
		{"bad date", "POST", "/attendance", `{"inscripcion_id":1,"fecha":"07-04-2026","estado":"Presente"}`, fiber.StatusUnprocessableEntity},
		{"update bad date", "PUT", "/attendance/5", `{"fecha":"2026-13-01"}`, fiber.StatusUnprocessableEntity},
		{"filter unknown status", "GET", "/attendance?estado=Tarde", "", fiber.StatusBadRequest},
		{"filter bad date", "GET", "/attendance?desde=hoy", "", fiber.StatusBadRequest},
		{"filter bad group", "GET", "/attendance?grupo_id=0", "", fiber.StatusBadRequest},
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
