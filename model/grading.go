package model

import "time"

// GradableActivity is a task or exam owned by a group
type GradableActivity struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	GroupID     uint       `gorm:"column:grupo_id;not null;index" json:"grupo_id"`
	Title       string     `gorm:"column:titulo;type:varchar(200);not null" json:"titulo"`
	Description string     `gorm:"column:descripcion;type:text" json:"descripcion"`
	Kind        string     `gorm:"column:tipo;type:varchar(30);not null" json:"tipo"` // e.g. tarea, examen
	DueDate     *time.Time `gorm:"column:fecha_limite" json:"fecha_limite,omitempty"`
	MaxScore    float64    `gorm:"column:puntaje_maximo;type:numeric(6,2);not null;default:100;check:chk_actividades_puntaje_maximo,puntaje_maximo > 0" json:"puntaje_maximo"`
	Weight      float64    `gorm:"column:ponderacion;type:numeric(5,2);not null;default:0;check:chk_actividades_ponderacion,ponderacion >= 0" json:"ponderacion"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Group *Group `gorm:"foreignKey:GroupID;constraint:fk_actividades_grupo,OnUpdate:CASCADE,OnDelete:CASCADE" json:"grupo,omitempty"`
}

func (GradableActivity) TableName() string { return "actividades_evaluables" }

// Submission is what an enrolled student delivered for an activity
type Submission struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ActivityID      uint      `gorm:"column:actividad_id;not null;uniqueIndex:uq_entregas_actividad_inscripcion,priority:1" json:"actividad_id"`
	EnrollmentID    uint      `gorm:"column:inscripcion_id;not null;uniqueIndex:uq_entregas_actividad_inscripcion,priority:2;index" json:"inscripcion_id"`
	SubmittedAt     time.Time `gorm:"column:fecha_entrega;not null" json:"fecha_entrega"`
	Content         string    `gorm:"column:contenido;type:text" json:"contenido"`
	AttachmentKey   *string   `gorm:"column:archivo_key;type:varchar(255)" json:"-"`
	AttachmentName  *string   `gorm:"column:archivo_nombre;type:varchar(255)" json:"archivo_nombre,omitempty"`
	AttachmentPages *int      `gorm:"column:archivo_paginas" json:"archivo_paginas,omitempty"`
	AttachmentURL   string    `gorm:"-" json:"archivo_url,omitempty"` // presigned on read
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Activity   *GradableActivity `gorm:"foreignKey:ActivityID;constraint:fk_entregas_actividad,OnUpdate:CASCADE,OnDelete:CASCADE" json:"actividad,omitempty"`
	Enrollment *Enrollment       `gorm:"foreignKey:EnrollmentID;constraint:fk_entregas_inscripcion,OnUpdate:CASCADE,OnDelete:CASCADE" json:"inscripcion,omitempty"`
}

func (Submission) TableName() string { return "entregas" }

// Grade is the single evaluation of a submission. It can be updated but never duplicated.
type Grade struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"column:entrega_id;not null;uniqueIndex:uq_calificaciones_entrega" json:"entrega_id"`
	Score        float64   `gorm:"column:puntaje;type:numeric(6,2);not null;check:chk_calificaciones_puntaje,puntaje >= 0" json:"puntaje"`
	GradedAt     time.Time `gorm:"column:fecha_calificacion;not null" json:"fecha_calificacion"`
	Feedback     *string   `gorm:"column:retroalimentacion;type:text" json:"retroalimentacion,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Submission *Submission `gorm:"foreignKey:SubmissionID;constraint:fk_calificaciones_entrega,OnUpdate:CASCADE,OnDelete:CASCADE" json:"entrega,omitempty"`
}

func (Grade) TableName() string { return "calificaciones" }
