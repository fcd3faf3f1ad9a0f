package model

import "time"

// Faculty is an academic faculty. Programs, courses and professors point to it.
type Faculty struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"column:codigo;type:varchar(20);not null;uniqueIndex:uq_facultades_codigo" json:"codigo"`
	Name      string    `gorm:"column:nombre;type:varchar(150);not null;uniqueIndex:uq_facultades_nombre" json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Faculty) TableName() string { return "facultades" }

// AcademicProgram is a degree program offered by a faculty
type AcademicProgram struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"column:nombre;type:varchar(150);not null" json:"nombre"`
	Code          string         `gorm:"column:codigo;type:varchar(20);not null;uniqueIndex:uq_programas_codigo" json:"codigo"`
	FacultyID     uint           `gorm:"column:facultad_id;not null;index" json:"facultad_id"`
	DurationTerms *int           `gorm:"column:duracion_semestres;check:chk_programas_duracion,duracion_semestres IS NULL OR duracion_semestres > 0" json:"duracion_semestres,omitempty"`
	Status        EstadoPrograma `gorm:"column:estado;type:varchar(20);not null;default:'Activo'" json:"estado"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Faculty *Faculty `gorm:"foreignKey:FacultyID;constraint:fk_programas_facultad,OnUpdate:CASCADE,OnDelete:RESTRICT" json:"facultad,omitempty"`
}

func (AcademicProgram) TableName() string { return "programas_academicos" }
