package model

import (
	"encoding/json"
	"testing"
)

func TestEnumValid(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		got   bool
	}{
		{"programa activo", true, ProgramaActivo.Valid()},
		{"programa en liquidacion", true, EstadoPrograma("En Liquidacion").Valid()},
		{"programa lowercase", false, EstadoPrograma("activo").Valid()},
		{"curso en revision", true, EstadoCurso("En Revision").Valid()},
		{"curso unknown", false, EstadoCurso("Cerrado").Valid()},
		{"estudiante en prueba", true, EstadoAcademicoEstudiante("En Prueba Academica").Valid()},
		{"estudiante trailing space", false, EstadoAcademicoEstudiante("Graduado ").Valid()},
		{"asistencia tardanza", true, AsistenciaTardanza.Valid()},
		{"asistencia empty", false, EstadoAsistencia("").Valid()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.valid {
				t.Errorf("Valid() = %v, want %v", tt.got, tt.valid)
			}
		})
	}
}

func TestEnumUnmarshalJSON(t *testing.T) {
	var req struct {
		Status EstadoPrograma `json:"estado"`
	}

	if err := json.Unmarshal([]byte(`{"estado":"En Liquidacion"}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != ProgramaEnLiquidacion {
		t.Errorf("status = %q, want %q", req.Status, ProgramaEnLiquidacion)
	}

	if err := json.Unmarshal([]byte(`{"estado":"Suspendido"}`), &req); err == nil {
		t.Error("expected error for unknown literal")
	}
	if err := json.Unmarshal([]byte(`{"estado":3}`), &req); err == nil {
		t.Error("expected error for non-string value")
	}
}

func TestEnumScanAndValue(t *testing.T) {
	var s EstadoAsistencia
	if err := s.Scan([]byte("Justificado")); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if s != AsistenciaJustificado {
		t.Errorf("scanned %q", s)
	}

	if err := s.Scan("presente"); err == nil {
		t.Error("expected error scanning unknown literal")
	}
	if err := s.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
	if err := s.Scan(nil); err != nil || s != "" {
		t.Errorf("Scan(nil) = %q, %v", s, err)
	}

	v, err := EstudianteEnPruebaAcademica.Value()
	if err != nil || v != "En Prueba Academica" {
		t.Errorf("Value() = %v, %v", v, err)
	}
	if _, err := EstadoCurso("Borrador").Value(); err == nil {
		t.Error("expected error writing unknown literal")
	}
	if v, err := EstadoCurso("").Value(); err != nil || v != nil {
		t.Errorf("empty Value() = %v, %v", v, err)
	}
}
