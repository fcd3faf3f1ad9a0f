package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/sahilchouksey/academia-api/model"
)

type enumRequest struct {
	Status model.EstadoAsistencia `json:"estado" validate:"required,enum"`
	Course model.EstadoCurso      `json:"estado_curso" validate:"omitempty,enum"`
}

type clockRequest struct {
	Start string `json:"hora_inicio" validate:"required,clock"`
}

func TestEnumTag(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     enumRequest
		wantErr bool
	}{
		{"valid", enumRequest{Status: model.AsistenciaPresente}, false},
		{"valid with optional", enumRequest{Status: model.AsistenciaTardanza, Course: model.CursoEnRevision}, false},
		{"unknown literal", enumRequest{Status: "presente"}, true},
		{"missing required", enumRequest{}, true},
		{"unknown optional", enumRequest{Status: model.AsistenciaAusente, Course: "Cerrado"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrorsUseJSONNames(t *testing.T) {
	err := NewValidator().ValidateStruct(enumRequest{Status: "Tarde"})
	errs := FormatValidationErrors(err)
	if _, ok := errs["estado"]; !ok {
		t.Fatalf("expected error keyed by json name, got %v", errs)
	}
}

func TestClockTag(t *testing.T) {
	v := NewValidator()
	for _, s := range []string{"08:00", "23:59", "07:30:15"} {
		if err := v.ValidateStruct(clockRequest{Start: s}); err != nil {
			t.Errorf("%q rejected: %v", s, err)
		}
	}
	for _, s := range []string{"8am", "24:00", "12:60", "2026-01-01"} {
		if err := v.ValidateStruct(clockRequest{Start: s}); err == nil {
			t.Errorf("%q accepted", s)
		}
	}
}

func TestParseClock(t *testing.T) {
	d, err := ParseClock("14:05:30")
	if err != nil {
		t.Fatal(err)
	}
	want := 14*time.Hour + 5*time.Minute + 30*time.Second
	if d != want {
		t.Errorf("ParseClock() = %v, want %v", d, want)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "  Reunion manana  ", "Reunion manana"},
		{"tags removed", "<p>Hola <b>equipo</b></p>", "Hola equipo"},
		{"script dropped", "Aviso<script>alert(1)</script>", "Aviso"},
		{"blocks become lines", "<p>uno</p><p>dos</p>", "uno\ndos"},
		{"entities decoded", "Notas &amp; asistencia", "Notas & asistencia"},
		{"spaces collapse", "<div>a    b</div>", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("secreto123"); !ok {
		t.Error("valid password rejected")
	}
	if ok, errs := ValidatePassword("12345678"); ok || len(errs) != 1 {
		t.Errorf("password without letters: ok=%v errs=%v", ok, errs)
	}
	if ok, errs := ValidatePassword("abc"); ok || len(errs) != 1 {
		t.Errorf("short password: ok=%v errs=%v", ok, errs)
	}
	if ok, errs := ValidatePassword(strings.Repeat("clave", 15)); ok || len(errs) != 1 {
		t.Errorf("password over the bcrypt limit: ok=%v errs=%v", ok, errs)
	}
}

func TestSanitizeOptional(t *testing.T) {
	if SanitizeOptional(nil) != nil {
		t.Error("nil input should stay nil")
	}
	blank := "   "
	if SanitizeOptional(&blank) != nil {
		t.Error("blank input should become nil")
	}
	s := " Aula 3\x00 "
	if got := SanitizeOptional(&s); got == nil || *got != "Aula 3" {
		t.Errorf("SanitizeOptional() = %v", got)
	}
}
