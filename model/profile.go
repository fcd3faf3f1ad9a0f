package model

import "time"

// Student is the academic profile of a user
type Student struct {
	ID             uint                      `gorm:"primaryKey" json:"id"`
	UserID         uint                      `gorm:"column:usuario_id;not null;uniqueIndex:uq_estudiantes_usuario" json:"usuario_id"`
	DocumentType   *string                   `gorm:"column:documento_tipo;type:varchar(20)" json:"documento_tipo,omitempty"`
	DocumentNumber *string                   `gorm:"column:documento_numero;type:varchar(30)" json:"documento_numero,omitempty"`
	ProgramID      uint                      `gorm:"column:programa_id;not null;index" json:"programa_id"`
	Status         EstadoAcademicoEstudiante `gorm:"column:estado_academico;type:varchar(30);not null;default:'Matriculado'" json:"estado_academico"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`

	User    *User            `gorm:"foreignKey:UserID;constraint:fk_estudiantes_usuario,OnUpdate:CASCADE,OnDelete:CASCADE" json:"usuario,omitempty"`
	Program *AcademicProgram `gorm:"foreignKey:ProgramID;constraint:fk_estudiantes_programa,OnUpdate:CASCADE,OnDelete:RESTRICT" json:"programa,omitempty"`
}

func (Student) TableName() string { return "estudiantes" }

// Professor is the teaching profile of a user. The faculty link is optional and
// is cleared when the faculty is deleted.
type Professor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"column:usuario_id;not null;uniqueIndex:uq_profesores_usuario" json:"usuario_id"`
	DocumentType   *string   `gorm:"column:documento_tipo;type:varchar(20)" json:"documento_tipo,omitempty"`
	DocumentNumber *string   `gorm:"column:documento_numero;type:varchar(30)" json:"documento_numero,omitempty"`
	FacultyID      *uint     `gorm:"column:facultad_id;index" json:"facultad_id"`
	AcademicTitle  *string   `gorm:"column:titulo_academico;type:varchar(100)" json:"titulo_academico,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:fk_profesores_usuario,OnUpdate:CASCADE,OnDelete:CASCADE" json:"usuario,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID;constraint:fk_profesores_facultad,OnUpdate:CASCADE,OnDelete:SET NULL" json:"facultad,omitempty"`
}

func (Professor) TableName() string { return "profesores" }
