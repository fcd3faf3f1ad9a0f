package model

import (
	"time"

	"gorm.io/datatypes"
)

// Course is a catalog subject owned by a faculty
type Course struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"column:codigo;type:varchar(20);not null;uniqueIndex:uq_cursos_codigo" json:"codigo"`
	Name        string      `gorm:"column:nombre;type:varchar(150);not null" json:"nombre"`
	Description string      `gorm:"column:descripcion;type:text" json:"descripcion"`
	Credits     int         `gorm:"column:creditos;not null;default:0;check:chk_cursos_creditos,creditos >= 0" json:"creditos"`
	FacultyID   uint        `gorm:"column:facultad_id;not null;index" json:"facultad_id"`
	Status      EstadoCurso `gorm:"column:estado;type:varchar(20);not null;default:'Activo'" json:"estado"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Faculty *Faculty `gorm:"foreignKey:FacultyID;constraint:fk_cursos_facultad,OnUpdate:CASCADE,OnDelete:RESTRICT" json:"facultad,omitempty"`
}

func (Course) TableName() string { return "cursos" }

// Group is an offering of a course in a term, taught by one professor.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uint      `gorm:"column:curso_id;not null;uniqueIndex:uq_grupos_curso_codigo_periodo,priority:1" json:"curso_id"`
	ProfessorID uint      `gorm:"column:profesor_id;not null;index" json:"profesor_id"`
	Code        string    `gorm:"column:codigo;type:varchar(20);not null;uniqueIndex:uq_grupos_curso_codigo_periodo,priority:2" json:"codigo"`
	Term        string    `gorm:"column:periodo;type:varchar(20);not null;uniqueIndex:uq_grupos_curso_codigo_periodo,priority:3" json:"periodo"`
	Capacity    int       `gorm:"column:cupo;not null;default:30;check:chk_grupos_cupo,cupo > 0" json:"cupo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Course    *Course    `gorm:"foreignKey:CourseID;constraint:fk_grupos_curso,OnUpdate:CASCADE,OnDelete:CASCADE" json:"curso,omitempty"`
	Professor *Professor `gorm:"foreignKey:ProfessorID;constraint:fk_grupos_profesor,OnUpdate:CASCADE,OnDelete:RESTRICT" json:"profesor,omitempty"`
}

func (Group) TableName() string { return "grupos" }

// Schedule is a weekly time block of a group
type Schedule struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GroupID   uint           `gorm:"column:grupo_id;not null;index" json:"grupo_id"`
	DayOfWeek string         `gorm:"column:dia_semana;type:varchar(15);not null" json:"dia_semana"`
	StartTime datatypes.Time `gorm:"column:hora_inicio;not null" json:"hora_inicio"`
	EndTime   datatypes.Time `gorm:"column:hora_fin;not null;check:chk_horarios_rango,hora_fin > hora_inicio" json:"hora_fin"`
	Room      *string        `gorm:"column:aula;type:varchar(50)" json:"aula,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Group *Group `gorm:"foreignKey:GroupID;constraint:fk_horarios_grupo,OnUpdate:CASCADE,OnDelete:CASCADE" json:"grupo,omitempty"`
}

func (Schedule) TableName() string { return "horarios" }
