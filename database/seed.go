package database

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/utils/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions. Sample catalog data is only created when
// SEED_SAMPLE_DATA=true.
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedRoles(); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if os.Getenv("SEED_SAMPLE_DATA") == "true" {
		if err := s.SeedSampleCatalog(); err != nil {
			return fmt.Errorf("failed to seed sample catalog: %w", err)
		}
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedRoles creates the built-in roles. Existing roles are left untouched.
func (s *Seeder) SeedRoles() error {
	roles := []model.Role{
		{Name: model.RoleAdmin, Description: "Administrador del sistema"},
		{Name: model.RoleProfessor, Description: "Docente a cargo de grupos"},
		{Name: model.RoleStudent, Description: "Estudiante matriculado"},
	}

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nombre"}},
		DoNothing: true,
	}).Create(&roles)
	if result.Error != nil {
		return ClassifyError(result.Error)
	}

	log.Printf("✅ Roles ready (%d created)\n", result.RowsAffected)
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var role model.Role
	if err := s.db.Where("nombre = ?", model.RoleAdmin).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("admin role missing, seed roles first")
		}
		return err
	}

	// Check if admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("rol_id = ?", role.ID).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	// Get admin credentials from environment variables
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	// Hash password
	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		FullName:     "Administrador del Sistema",
		RoleID:       role.ID,
		Active:       true,
	}

	if err := s.db.Omit(clause.Associations).Create(admin).Error; err != nil {
		return ClassifyError(err)
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedSampleCatalog creates one faculty with a program and two courses
func (s *Seeder) SeedSampleCatalog() error {
	var count int64
	if err := s.db.Model(&model.Faculty{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Faculties already exist, skipping...")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		faculty := model.Faculty{Code: "FI", Name: "Facultad de Ingenieria"}
		if err := tx.Create(&faculty).Error; err != nil {
			return ClassifyError(err)
		}

		duration := 10
		program := model.AcademicProgram{
			Name:          "Ingenieria de Sistemas",
			Code:          "ISIS",
			FacultyID:     faculty.ID,
			DurationTerms: &duration,
			Status:        model.ProgramaActivo,
		}
		if err := tx.Omit(clause.Associations).Create(&program).Error; err != nil {
			return ClassifyError(err)
		}

		courses := []model.Course{
			{Code: "ISIS-101", Name: "Programacion I", Description: "Fundamentos de programacion", Credits: 4, FacultyID: faculty.ID, Status: model.CursoActivo},
			{Code: "ISIS-201", Name: "Bases de Datos", Description: "Modelado relacional y SQL", Credits: 3, FacultyID: faculty.ID, Status: model.CursoActivo},
		}
		if err := tx.Omit(clause.Associations).Create(&courses).Error; err != nil {
			return ClassifyError(err)
		}

		log.Printf("✅ Created sample faculty %s with %d courses\n", faculty.Code, len(courses))
		return nil
	})
}
