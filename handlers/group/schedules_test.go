package group

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestClock(t *testing.T) {
	if got := time.Duration(clock("07:45")); got != 7*time.Hour+45*time.Minute {
		t.Errorf("clock(07:45) = %v", got)
	}
}

func TestScheduleRequestsRejected(t *testing.T) {
	h := NewGroupHandler(nil, nil, nil)
	app := fiber.New()
	app.Post("/groups/:id/schedules", h.CreateSchedule)
	app.Put("/groups/:id/schedules/:scheduleId", h.UpdateSchedule)
	app.Post("/groups/:id/attendance", h.RecordRoster)
	app.Get("/groups/:id/attendance", h.GetRoster)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"bad start time", "POST", "/groups/1/schedules", `{"dia_semana":"Lunes","hora_inicio":"8am","hora_fin":"10:00"}`, fiber.StatusUnprocessableEntity},
		{"hour out of range", "POST", "/groups/1/schedules", `{"dia_semana":"Lunes","hora_inicio":"08:00","hora_fin":"25:00"}`, fiber.StatusUnprocessableEntity},
		{"missing day", "POST", "/groups/1/schedules", `{"hora_inicio":"08:00","hora_fin":"10:00"}`, fiber.StatusUnprocessableEntity},
		{"bad group id", "POST", "/groups/x/schedules", `{"dia_semana":"Lunes","hora_inicio":"08:00","hora_fin":"10:00"}`, fiber.StatusBadRequest},
		{"bad schedule id", "PUT", "/groups/1/schedules/0", `{"aula":"B-12"}`, fiber.StatusBadRequest},
		{"update bad time", "PUT", "/groups/1/schedules/2", `{"hora_fin":"10h"}`, fiber.StatusUnprocessableEntity},
		{"roster unknown status", "POST", "/groups/1/attendance", `{"fecha":"2026-03-02","registros":[{"inscripcion_id":1,"estado":"Enfermo"}]}`, fiber.StatusBadRequest},
		{"roster bad date", "POST", "/groups/1/attendance", `{"fecha":"02/03/2026","registros":[{"inscripcion_id":1,"estado":"Presente"}]}`, fiber.StatusUnprocessableEntity},
		{"roster repeats enrollment", "POST", "/groups/1/attendance", `{"fecha":"2026-03-02","registros":[{"inscripcion_id":4,"estado":"Presente"},{"inscripcion_id":4,"estado":"Ausente"}]}`, fiber.StatusUnprocessableEntity},
		{"roster empty", "POST", "/groups/1/attendance", `{"fecha":"2026-03-02","registros":[]}`, fiber.StatusUnprocessableEntity},
		{"roster query bad date", "GET", "/groups/1/attendance?fecha=ayer", "", fiber.StatusBadRequest},
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
