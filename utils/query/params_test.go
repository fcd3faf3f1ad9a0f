package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
)

// run serves one request through fn and returns the status it wrote
func run(t *testing.T, route, target string, fn fiber.Handler) int {
	t.Helper()
	app := fiber.New()
	app.Get(route, fn)
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestID(t *testing.T) {
	tests := []struct {
		target string
		want   uint
		ok     bool
	}{
		{"/items/12", 12, true},
		{"/items/0", 0, false},
		{"/items/-3", 0, false},
		{"/items/abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			run(t, "/items/:id", tt.target, func(c *fiber.Ctx) error {
				id, err := ID(c, "id")
				if (err == nil) != tt.ok || id != tt.want {
					t.Errorf("ID() = %d, %v", id, err)
				}
				return nil
			})
		})
	}
}

func TestOptionalID(t *testing.T) {
	run(t, "/", "/?grupo_id=4", func(c *fiber.Ctx) error {
		if id, err := OptionalID(c, "grupo_id"); err != nil || id != 4 {
			t.Errorf("OptionalID() = %d, %v", id, err)
		}
		if id, err := OptionalID(c, "curso_id"); err != nil || id != 0 {
			t.Errorf("absent OptionalID() = %d, %v", id, err)
		}
		return nil
	})

	run(t, "/", "/?grupo_id=x", func(c *fiber.Ctx) error {
		if _, err := OptionalID(c, "grupo_id"); err == nil {
			t.Error("expected error for non numeric id")
		}
		return nil
	})
}

func TestListBoolDate(t *testing.T) {
	run(t, "/", "/?page=3&limit=5&activo=false&desde=2026-03-01&search=%20ana%20", func(c *fiber.Ctx) error {
		params := List(c)
		if params.Page != 3 || params.Limit != 5 {
			t.Errorf("List() = %+v", params)
		}

		b, err := Bool(c, "activo")
		if err != nil || b == nil || *b {
			t.Errorf("Bool() = %v, %v", b, err)
		}
		if b, err := Bool(c, "leido"); err != nil || b != nil {
			t.Errorf("absent Bool() = %v, %v", b, err)
		}

		d, err := Date(c, "desde")
		if err != nil || d == nil || d.Format(DateLayout) != "2026-03-01" {
			t.Errorf("Date() = %v, %v", d, err)
		}

		if s := Search(c); s != "ana" {
			t.Errorf("Search() = %q", s)
		}
		return nil
	})

	run(t, "/", "/?activo=quizas&desde=01/03/2026", func(c *fiber.Ctx) error {
		if _, err := Bool(c, "activo"); err == nil {
			t.Error("expected error for invalid bool")
		}
		if _, err := Date(c, "desde"); err == nil {
			t.Error("expected error for invalid date")
		}
		return nil
	})
}

func TestEnum(t *testing.T) {
	run(t, "/", "/?estado=En%20Liquidacion&otro=Cerrado", func(c *fiber.Ctx) error {
		v, err := Enum[model.EstadoPrograma](c, "estado")
		if err != nil || v != model.ProgramaEnLiquidacion {
			t.Errorf("Enum() = %q, %v", v, err)
		}
		if _, err := Enum[model.EstadoPrograma](c, "otro"); err == nil {
			t.Error("expected error for unknown literal")
		}
		if v, err := Enum[model.EstadoPrograma](c, "falta"); err != nil || v != "" {
			t.Errorf("absent Enum() = %q, %v", v, err)
		}
		return nil
	})
}
