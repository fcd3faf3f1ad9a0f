package model

import (
	"database/sql/driver"
	"time"
)

// Dashboard records back the dashboard API. They are a separate context from the
// relational academic entities and hold no references to them.

// StatusEnum is the status of a student card on the dashboard.
type StatusEnum string

const (
	StatusActive   StatusEnum = "active"
	StatusInactive StatusEnum = "inactive"
)

func (s StatusEnum) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

func (s *StatusEnum) Scan(value any) error         { return scanEnum(s, value, "StatusEnum") }
func (s StatusEnum) Value() (driver.Value, error)  { return enumValue(s, "StatusEnum") }
func (s *StatusEnum) UnmarshalJSON(b []byte) error { return unmarshalEnum(s, b, "StatusEnum") }

// PriorityEnum ranks activities, messages and alerts.
type PriorityEnum string

const (
	PriorityLow    PriorityEnum = "low"
	PriorityMedium PriorityEnum = "medium"
	PriorityHigh   PriorityEnum = "high"
)

func (p PriorityEnum) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p *PriorityEnum) Scan(value any) error         { return scanEnum(p, value, "PriorityEnum") }
func (p PriorityEnum) Value() (driver.Value, error)  { return enumValue(p, "PriorityEnum") }
func (p *PriorityEnum) UnmarshalJSON(b []byte) error { return unmarshalEnum(p, b, "PriorityEnum") }

// ActivityStatusEnum is the progress of a dashboard activity.
type ActivityStatusEnum string

const (
	ActivityPending    ActivityStatusEnum = "pending"
	ActivityInProgress ActivityStatusEnum = "in-progress"
	ActivityCompleted  ActivityStatusEnum = "completed"
)

func (s ActivityStatusEnum) Valid() bool {
	switch s {
	case ActivityPending, ActivityInProgress, ActivityCompleted:
		return true
	}
	return false
}

func (s *ActivityStatusEnum) Scan(value any) error {
	return scanEnum(s, value, "ActivityStatusEnum")
}
func (s ActivityStatusEnum) Value() (driver.Value, error) {
	return enumValue(s, "ActivityStatusEnum")
}
func (s *ActivityStatusEnum) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(s, b, "ActivityStatusEnum")
}

// CategoryEnum is the kind of a dashboard activity.
type CategoryEnum string

const (
	CategoryTarea         CategoryEnum = "tarea"
	CategoryExamen        CategoryEnum = "examen"
	CategoryProyecto      CategoryEnum = "proyecto"
	CategoryPresentacion  CategoryEnum = "presentacion"
	CategoryLaboratorio   CategoryEnum = "laboratorio"
	CategoryEnsayo        CategoryEnum = "ensayo"
	CategoryInvestigacion CategoryEnum = "investigacion"
)

func (c CategoryEnum) Valid() bool {
	switch c {
	case CategoryTarea, CategoryExamen, CategoryProyecto, CategoryPresentacion,
		CategoryLaboratorio, CategoryEnsayo, CategoryInvestigacion:
		return true
	}
	return false
}

func (c *CategoryEnum) Scan(value any) error         { return scanEnum(c, value, "CategoryEnum") }
func (c CategoryEnum) Value() (driver.Value, error)  { return enumValue(c, "CategoryEnum") }
func (c *CategoryEnum) UnmarshalJSON(b []byte) error { return unmarshalEnum(c, b, "CategoryEnum") }

// DashboardStudent is the student card shown on the dashboard
type DashboardStudent struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"type:varchar(200);not null" json:"name"`
	Email          string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_dashboard_estudiantes_email" json:"email"`
	Program        string     `gorm:"type:varchar(150)" json:"program"`
	Status         StatusEnum `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`
	AverageGrade   float64    `gorm:"type:numeric(5,2);not null;default:0;check:chk_dashboard_estudiantes_promedio,average_grade >= 0 AND average_grade <= 100" json:"average_grade"`
	AttendanceRate float64    `gorm:"type:numeric(5,2);not null;default:0;check:chk_dashboard_estudiantes_asistencia,attendance_rate >= 0 AND attendance_rate <= 100" json:"attendance_rate"`
	AvatarURL      *string    `gorm:"type:varchar(512)" json:"avatar_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (DashboardStudent) TableName() string { return "dashboard_estudiantes" }

// DashboardActivity is an activity card, optionally assigned to a dashboard student
type DashboardActivity struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Title       string             `gorm:"type:varchar(200);not null" json:"title"`
	Description string             `gorm:"type:text" json:"description"`
	Category    CategoryEnum       `gorm:"type:varchar(20);not null" json:"category"`
	Priority    PriorityEnum       `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status      ActivityStatusEnum `gorm:"type:varchar(15);not null;default:'pending';index" json:"status"`
	CourseName  string             `gorm:"type:varchar(150)" json:"course_name"`
	DueDate     *time.Time         `gorm:"index" json:"due_date,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	StudentID   *uint              `gorm:"index" json:"student_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	Student *DashboardStudent `gorm:"foreignKey:StudentID;constraint:fk_dashboard_actividades_estudiante,OnDelete:SET NULL" json:"student,omitempty"`
}

func (DashboardActivity) TableName() string { return "dashboard_actividades" }

// DashboardMessage is an inbox entry. Content is stored as plain text.
type DashboardMessage struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Sender    string       `gorm:"type:varchar(200);not null" json:"sender"`
	Recipient string       `gorm:"type:varchar(200)" json:"recipient"`
	Subject   string       `gorm:"type:varchar(255);not null" json:"subject"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	Priority  PriorityEnum `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Read      bool         `gorm:"not null;default:false;index" json:"read"`
	SentAt    time.Time    `gorm:"not null;index" json:"sent_at"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (DashboardMessage) TableName() string { return "dashboard_mensajes" }
