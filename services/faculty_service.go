package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FacultyService manages faculties and their reverse lookups
type FacultyService struct {
	db *gorm.DB
}

// NewFacultyService creates a new faculty service
func NewFacultyService(db *gorm.DB) *FacultyService {
	return &FacultyService{db: db}
}

// FacultyFilter narrows faculty lists
type FacultyFilter struct {
	Search string // matches code or name
}

// Create inserts a faculty. Code and name must be unique.
func (s *FacultyService) Create(ctx context.Context, f *model.Faculty) error {
	return storeErr("create faculty", s.db.WithContext(ctx).Create(f).Error)
}

// Get loads one faculty
func (s *FacultyService) Get(ctx context.Context, id uint) (*model.Faculty, error) {
	var f model.Faculty
	if err := findByID(s.db.WithContext(ctx), &f, id, "faculty"); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns faculties ordered by name
func (s *FacultyService) List(ctx context.Context, filter FacultyFilter, params ListParams) (*Page[model.Faculty], error) {
	query := s.db.WithContext(ctx).Model(&model.Faculty{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("codigo ILIKE ? OR nombre ILIKE ?", like, like)
	}
	return paginate[model.Faculty](query, params, "nombre ASC")
}

// Update applies changes to a faculty inside a transaction
func (s *FacultyService) Update(ctx context.Context, id uint, apply func(*model.Faculty) error) (*model.Faculty, error) {
	var f model.Faculty
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &f, id, "faculty"); err != nil {
			return err
		}
		if err := apply(&f); err != nil {
			return err
		}
		f.ID = id
		return storeErr("update faculty", tx.Save(&f).Error)
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes a faculty. It is restricted while programs or courses reference
// it; professors affiliated with it are detached in the same transaction.
func (s *FacultyService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f model.Faculty
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &f, id, "faculty"); err != nil {
			return err
		}

		programs, err := countWhere(tx, &model.AcademicProgram{}, "facultad_id", id)
		if err != nil {
			return fmt.Errorf("failed to count programs: %w", err)
		}
		courses, err := countWhere(tx, &model.Course{}, "facultad_id", id)
		if err != nil {
			return fmt.Errorf("failed to count courses: %w", err)
		}
		if programs > 0 || courses > 0 {
			return database.Restricted("faculty "+f.Code, fmt.Sprintf("%d programs and %d courses", programs, courses))
		}

		if err := tx.Model(&model.Professor{}).
			Where("facultad_id = ?", id).
			Update("facultad_id", nil).Error; err != nil {
			return storeErr("detach professors", err)
		}

		return deleteByID(tx, &model.Faculty{}, id, "faculty")
	})
}

// Programs lists the programs of a faculty
func (s *FacultyService) Programs(ctx context.Context, id uint, params ListParams) (*Page[model.AcademicProgram], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Faculty{}, id, "faculty"); err != nil {
		return nil, err
	}
	return paginate[model.AcademicProgram](db.Model(&model.AcademicProgram{}).Where("facultad_id = ?", id), params, "nombre ASC")
}

// Courses lists the courses of a faculty
func (s *FacultyService) Courses(ctx context.Context, id uint, params ListParams) (*Page[model.Course], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Faculty{}, id, "faculty"); err != nil {
		return nil, err
	}
	return paginate[model.Course](db.Model(&model.Course{}).Where("facultad_id = ?", id), params, "codigo ASC")
}

// Professors lists the professors affiliated with a faculty
func (s *FacultyService) Professors(ctx context.Context, id uint, params ListParams) (*Page[model.Professor], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Faculty{}, id, "faculty"); err != nil {
		return nil, err
	}
	return paginate[model.Professor](db.Model(&model.Professor{}).Where("facultad_id = ?", id), params, "id ASC", "User")
}
