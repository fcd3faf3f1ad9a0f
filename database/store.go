package database

import "github.com/sahilchouksey/academia-api/model"

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GetDB returns the underlying *gorm.DB
	GetDB() interface{}
}

// Models lists every persisted model in dependency order: a model only references
// models that appear before it.
var Models = []interface{}{
	// Accounts
	&model.Role{},
	&model.User{},
	&model.RevokedToken{},

	// Catalog
	&model.Faculty{},
	&model.AcademicProgram{},
	&model.Course{},

	// Profiles
	&model.Student{},
	&model.Professor{},

	// Class instances
	&model.Group{},
	&model.Schedule{},
	&model.Enrollment{},
	&model.Attendance{},

	// Grading
	&model.GradableActivity{},
	&model.Submission{},
	&model.Grade{},

	// Dashboard context
	&model.DashboardStudent{},
	&model.DashboardActivity{},
	&model.DashboardMessage{},
}
