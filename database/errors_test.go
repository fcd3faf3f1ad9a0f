package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		kind       error
		constraint string
	}{
		{"pgx unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_facultades_codigo"}, ErrDuplicateKey, "uq_facultades_codigo"},
		{"pgx foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "fk_programas_facultad"}, ErrForeignKey, "fk_programas_facultad"},
		{"pgx check", &pgconn.PgError{Code: "23514", ConstraintName: "chk_grupos_capacidad"}, ErrCheckViolation, "chk_grupos_capacidad"},
		{"pgx not null", &pgconn.PgError{Code: "23502", ColumnName: "puntaje"}, ErrRequired, ""},
		{"pq not null", &pq.Error{Code: "23502", Column: "nombre"}, ErrRequired, ""},
		{"pq unique", &pq.Error{Code: "23505", Constraint: "uq_usuarios_email"}, ErrDuplicateKey, "uq_usuarios_email"},
		{"pq foreign key", &pq.Error{Code: "23503", Constraint: "fk_estudiantes_programa"}, ErrForeignKey, "fk_estudiantes_programa"},
		{"pq check", &pq.Error{Code: "23514", Constraint: "chk_calificaciones_puntaje"}, ErrCheckViolation, "chk_calificaciones_puntaje"},
		{"wrapped pgx", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrDuplicateKey, ""},
		{"gorm not found", gorm.ErrRecordNotFound, ErrNotFound, ""},
		{"gorm translated duplicate", gorm.ErrDuplicatedKey, ErrDuplicateKey, ""},
		{"gorm translated check", gorm.ErrCheckConstraintViolated, ErrCheckViolation, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if !errors.Is(got, tt.kind) {
				t.Fatalf("ClassifyError() = %v, want kind %v", got, tt.kind)
			}
			if !IsKind(got) {
				t.Error("IsKind() = false for classified error")
			}

			var ce *ConstraintError
			if errors.As(got, &ce) && ce.Constraint != tt.constraint {
				t.Errorf("constraint = %q, want %q", ce.Constraint, tt.constraint)
			}
		})
	}
}

func TestClassifyErrorKeepsDriverError(t *testing.T) {
	driverErr := &pq.Error{Code: "23505", Constraint: "uq_cursos_codigo", Message: "duplicate key value"}
	got := ClassifyError(driverErr)

	var pqErr *pq.Error
	if !errors.As(got, &pqErr) {
		t.Fatal("driver error not reachable with errors.As")
	}
	if got.Error() != "duplicate key (uq_cursos_codigo)" {
		t.Errorf("message leaks driver text: %q", got.Error())
	}
}

func TestClassifyErrorPassThrough(t *testing.T) {
	if ClassifyError(nil) != nil {
		t.Error("ClassifyError(nil) != nil")
	}

	plain := errors.New("connection refused")
	if got := ClassifyError(plain); got != plain || IsKind(got) {
		t.Errorf("infrastructure error changed: %v", got)
	}

	serialization := &pgconn.PgError{Code: "40001"}
	if got := ClassifyError(serialization); IsKind(got) {
		t.Errorf("40001 classified as %v", got)
	}

	already := NotFound("faculty", 7)
	if got := ClassifyError(already); got != already {
		t.Error("classified error was wrapped again")
	}
}

func TestRestricted(t *testing.T) {
	err := Restricted("faculty", "2 programs")
	if !errors.Is(err, ErrRestricted) {
		t.Fatalf("Restricted() does not match ErrRestricted: %v", err)
	}
	if errors.Is(err, ErrForeignKey) {
		t.Error("Restricted() matches ErrForeignKey")
	}
}
