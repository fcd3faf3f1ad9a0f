package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Enumerated states are stored and serialized as their exact literal, including
// embedded spaces. There are no transition rules between values.

// EstadoPrograma is the status of an academic program.
type EstadoPrograma string

const (
	ProgramaActivo        EstadoPrograma = "Activo"
	ProgramaInactivo      EstadoPrograma = "Inactivo"
	ProgramaEnLiquidacion EstadoPrograma = "En Liquidacion"
)

func (s EstadoPrograma) Valid() bool {
	switch s {
	case ProgramaActivo, ProgramaInactivo, ProgramaEnLiquidacion:
		return true
	}
	return false
}

func (s *EstadoPrograma) Scan(value any) error { return scanEnum(s, value, "EstadoPrograma") }
func (s EstadoPrograma) Value() (driver.Value, error) {
	return enumValue(s, "EstadoPrograma")
}
func (s *EstadoPrograma) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(s, b, "EstadoPrograma")
}

// EstadoCurso is the status of a course in the catalog.
type EstadoCurso string

const (
	CursoActivo     EstadoCurso = "Activo"
	CursoInactivo   EstadoCurso = "Inactivo"
	CursoEnRevision EstadoCurso = "En Revision"
)

func (s EstadoCurso) Valid() bool {
	switch s {
	case CursoActivo, CursoInactivo, CursoEnRevision:
		return true
	}
	return false
}

func (s *EstadoCurso) Scan(value any) error         { return scanEnum(s, value, "EstadoCurso") }
func (s EstadoCurso) Value() (driver.Value, error)  { return enumValue(s, "EstadoCurso") }
func (s *EstadoCurso) UnmarshalJSON(b []byte) error { return unmarshalEnum(s, b, "EstadoCurso") }

// EstadoAcademicoEstudiante is the academic standing of a student.
type EstadoAcademicoEstudiante string

const (
	EstudianteMatriculado       EstadoAcademicoEstudiante = "Matriculado"
	EstudianteRetirado          EstadoAcademicoEstudiante = "Retirado"
	EstudianteGraduado          EstadoAcademicoEstudiante = "Graduado"
	EstudianteEnPruebaAcademica EstadoAcademicoEstudiante = "En Prueba Academica"
)

func (s EstadoAcademicoEstudiante) Valid() bool {
	switch s {
	case EstudianteMatriculado, EstudianteRetirado, EstudianteGraduado, EstudianteEnPruebaAcademica:
		return true
	}
	return false
}

func (s *EstadoAcademicoEstudiante) Scan(value any) error {
	return scanEnum(s, value, "EstadoAcademicoEstudiante")
}
func (s EstadoAcademicoEstudiante) Value() (driver.Value, error) {
	return enumValue(s, "EstadoAcademicoEstudiante")
}
func (s *EstadoAcademicoEstudiante) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(s, b, "EstadoAcademicoEstudiante")
}

// EstadoAsistencia is the outcome recorded for a student on a class date.
type EstadoAsistencia string

const (
	AsistenciaPresente    EstadoAsistencia = "Presente"
	AsistenciaAusente     EstadoAsistencia = "Ausente"
	AsistenciaJustificado EstadoAsistencia = "Justificado"
	AsistenciaTardanza    EstadoAsistencia = "Tardanza"
)

func (s EstadoAsistencia) Valid() bool {
	switch s {
	case AsistenciaPresente, AsistenciaAusente, AsistenciaJustificado, AsistenciaTardanza:
		return true
	}
	return false
}

func (s *EstadoAsistencia) Scan(value any) error { return scanEnum(s, value, "EstadoAsistencia") }
func (s EstadoAsistencia) Value() (driver.Value, error) {
	return enumValue(s, "EstadoAsistencia")
}
func (s *EstadoAsistencia) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(s, b, "EstadoAsistencia")
}

// validEnum is satisfied by every enumeration in this package.
type validEnum interface {
	~string
	Valid() bool
}

func scanEnum[T validEnum](dst *T, value any, name string) error {
	if value == nil {
		*dst = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*dst = T(v)
	case []byte:
		*dst = T(string(v))
	default:
		return fmt.Errorf("unsupported type for %s: %T", name, value)
	}
	if !(*dst).Valid() {
		return fmt.Errorf("invalid %s: %q", name, string(*dst))
	}
	return nil
}

func enumValue[T validEnum](s T, name string) (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid %s: %q", name, string(s))
	}
	return string(s), nil
}

func unmarshalEnum[T validEnum](dst *T, b []byte, name string) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%s must be a string: %w", name, err)
	}
	v := T(raw)
	if !v.Valid() {
		return fmt.Errorf("invalid %s: %q", name, raw)
	}
	*dst = v
	return nil
}
