package database

import (
	"testing"
)

func mappingsFor(t *testing.T) []TableMapping {
	t.Helper()
	mappings, err := BuildMappings(Models...)
	if err != nil {
		t.Fatalf("BuildMappings: %v", err)
	}
	return mappings
}

func TestMappingsCoverEveryModel(t *testing.T) {
	mappings := mappingsFor(t)
	if len(mappings) != len(Models) {
		t.Fatalf("got %d mappings for %d models", len(mappings), len(Models))
	}

	seen := map[string]bool{}
	for _, m := range mappings {
		if seen[m.Table] {
			t.Errorf("table %s mapped twice", m.Table)
		}
		seen[m.Table] = true
	}
}

// A model may only reference tables created before it.
func TestModelsInDependencyOrder(t *testing.T) {
	created := map[string]bool{}
	for _, m := range mappingsFor(t) {
		for _, fk := range m.ForeignKeys {
			if fk.ReferencesTable != m.Table && !created[fk.ReferencesTable] {
				t.Errorf("%s.%s references %s before it exists", m.Table, fk.Column, fk.ReferencesTable)
			}
		}
		created[m.Table] = true
	}
}

func TestDeletePolicies(t *testing.T) {
	tests := []struct {
		table    string
		column   string
		parent   string
		onDelete string
	}{
		{"usuarios", "rol_id", "roles", "RESTRICT"},
		{"programas_academicos", "facultad_id", "facultades", "RESTRICT"},
		{"cursos", "facultad_id", "facultades", "RESTRICT"},
		{"estudiantes", "usuario_id", "usuarios", "CASCADE"},
		{"estudiantes", "programa_id", "programas_academicos", "RESTRICT"},
		{"profesores", "usuario_id", "usuarios", "CASCADE"},
		{"profesores", "facultad_id", "facultades", "SET NULL"},
		{"grupos", "curso_id", "cursos", "CASCADE"},
		{"grupos", "profesor_id", "profesores", "RESTRICT"},
		{"horarios", "grupo_id", "grupos", "CASCADE"},
		{"inscripciones", "estudiante_id", "estudiantes", "CASCADE"},
		{"inscripciones", "grupo_id", "grupos", "CASCADE"},
		{"asistencias", "inscripcion_id", "inscripciones", "CASCADE"},
		{"asistencias", "grupo_id", "grupos", "CASCADE"},
		{"actividades_evaluables", "grupo_id", "grupos", "CASCADE"},
		{"entregas", "actividad_id", "actividades_evaluables", "CASCADE"},
		{"entregas", "inscripcion_id", "inscripciones", "CASCADE"},
		{"calificaciones", "entrega_id", "entregas", "CASCADE"},
		{"dashboard_actividades", "student_id", "dashboard_estudiantes", "SET NULL"},
	}

	mappings := mappingsFor(t)
	for _, tt := range tests {
		t.Run(tt.table+"."+tt.column, func(t *testing.T) {
			m, ok := FindMapping(mappings, tt.table)
			if !ok {
				t.Fatalf("table %s not mapped", tt.table)
			}
			fk, ok := m.ForeignKey(tt.column)
			if !ok {
				t.Fatalf("no foreign key on %s", tt.column)
			}
			if fk.ReferencesTable != tt.parent || fk.ReferencesColumn != "id" {
				t.Errorf("references %s(%s), want %s(id)", fk.ReferencesTable, fk.ReferencesColumn, tt.parent)
			}
			if fk.OnDelete != tt.onDelete {
				t.Errorf("ON DELETE %s, want %s", fk.OnDelete, tt.onDelete)
			}
		})
	}
}

func TestUniqueIndexes(t *testing.T) {
	tests := []struct {
		table   string
		index   string
		columns []string
	}{
		{"roles", "uq_roles_nombre", []string{"nombre"}},
		{"usuarios", "uq_usuarios_email", []string{"email"}},
		{"facultades", "uq_facultades_codigo", []string{"codigo"}},
		{"facultades", "uq_facultades_nombre", []string{"nombre"}},
		{"programas_academicos", "uq_programas_codigo", []string{"codigo"}},
		{"cursos", "uq_cursos_codigo", []string{"codigo"}},
		{"estudiantes", "uq_estudiantes_usuario", []string{"usuario_id"}},
		{"profesores", "uq_profesores_usuario", []string{"usuario_id"}},
		{"grupos", "uq_grupos_curso_codigo_periodo", []string{"curso_id", "codigo", "periodo"}},
		{"inscripciones", "uq_inscripciones_estudiante_grupo", []string{"estudiante_id", "grupo_id"}},
		{"asistencias", "uq_asistencias_inscripcion_fecha", []string{"inscripcion_id", "fecha"}},
		{"entregas", "uq_entregas_actividad_inscripcion", []string{"actividad_id", "inscripcion_id"}},
		{"calificaciones", "uq_calificaciones_entrega", []string{"entrega_id"}},
		{"dashboard_estudiantes", "uq_dashboard_estudiantes_email", []string{"email"}},
	}

	mappings := mappingsFor(t)
	for _, tt := range tests {
		t.Run(tt.index, func(t *testing.T) {
			m, ok := FindMapping(mappings, tt.table)
			if !ok {
				t.Fatalf("table %s not mapped", tt.table)
			}
			idx, ok := m.Index(tt.index)
			if !ok {
				t.Fatalf("index %s missing on %s", tt.index, tt.table)
			}
			if !idx.Unique {
				t.Error("index is not unique")
			}
			if len(idx.Columns) != len(tt.columns) {
				t.Fatalf("columns = %v, want %v", idx.Columns, tt.columns)
			}
			for i := range tt.columns {
				if idx.Columns[i] != tt.columns[i] {
					t.Errorf("columns = %v, want %v", idx.Columns, tt.columns)
				}
			}
		})
	}
}

func TestCheckConstraints(t *testing.T) {
	tests := []struct {
		table string
		check string
	}{
		{"cursos", "chk_cursos_creditos"},
		{"programas_academicos", "chk_programas_duracion"},
		{"grupos", "chk_grupos_cupo"},
		{"horarios", "chk_horarios_rango"},
		{"actividades_evaluables", "chk_actividades_puntaje_maximo"},
		{"calificaciones", "chk_calificaciones_puntaje"},
	}

	mappings := mappingsFor(t)
	for _, tt := range tests {
		m, _ := FindMapping(mappings, tt.table)
		if chk, ok := m.Check(tt.check); !ok || chk.Expression == "" {
			t.Errorf("%s: check %s missing", tt.table, tt.check)
		}
	}
}

func TestFindMappingUnknownTable(t *testing.T) {
	if _, ok := FindMapping(mappingsFor(t), "semestres"); ok {
		t.Error("found mapping for unknown table")
	}
}
