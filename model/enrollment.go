package model

import (
	"time"

	"gorm.io/datatypes"
)

// Enrollment links a student to a group
type Enrollment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"column:estudiante_id;not null;uniqueIndex:uq_inscripciones_estudiante_grupo,priority:1" json:"estudiante_id"`
	GroupID    uint      `gorm:"column:grupo_id;not null;uniqueIndex:uq_inscripciones_estudiante_grupo,priority:2;index" json:"grupo_id"`
	EnrolledAt time.Time `gorm:"column:fecha_inscripcion;not null" json:"fecha_inscripcion"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Student *Student `gorm:"foreignKey:StudentID;constraint:fk_inscripciones_estudiante,OnUpdate:CASCADE,OnDelete:CASCADE" json:"estudiante,omitempty"`
	Group   *Group   `gorm:"foreignKey:GroupID;constraint:fk_inscripciones_grupo,OnUpdate:CASCADE,OnDelete:CASCADE" json:"grupo,omitempty"`
}

func (Enrollment) TableName() string { return "inscripciones" }

// Attendance is the per-date record of an enrollment.
// GroupID duplicates Enrollment.GroupID so that roster queries by (group, date) avoid a join;
// it is always copied from the enrollment, never taken from input.
type Attendance struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	EnrollmentID uint             `gorm:"column:inscripcion_id;not null;uniqueIndex:uq_asistencias_inscripcion_fecha,priority:1" json:"inscripcion_id"`
	GroupID      uint             `gorm:"column:grupo_id;not null;index:idx_asistencias_grupo_fecha,priority:1" json:"grupo_id"`
	Date         datatypes.Date   `gorm:"column:fecha;not null;uniqueIndex:uq_asistencias_inscripcion_fecha,priority:2;index:idx_asistencias_grupo_fecha,priority:2" json:"fecha"`
	Status       EstadoAsistencia `gorm:"column:estado;type:varchar(20);not null" json:"estado"`
	Notes        *string          `gorm:"column:observaciones;type:text" json:"observaciones,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	Enrollment *Enrollment `gorm:"foreignKey:EnrollmentID;constraint:fk_asistencias_inscripcion,OnUpdate:CASCADE,OnDelete:CASCADE" json:"inscripcion,omitempty"`
	Group      *Group      `gorm:"foreignKey:GroupID;constraint:fk_asistencias_grupo,OnUpdate:CASCADE,OnDelete:CASCADE" json:"grupo,omitempty"`
}

func (Attendance) TableName() string { return "asistencias" }
