package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgramService manages academic programs
type ProgramService struct {
	db *gorm.DB
}

// NewProgramService creates a new program service
func NewProgramService(db *gorm.DB) *ProgramService {
	return &ProgramService{db: db}
}

// ProgramFilter narrows program lists
type ProgramFilter struct {
	FacultyID uint
	Status    model.EstadoPrograma
	Search    string
}

// Create inserts a program after checking its faculty exists
func (s *ProgramService) Create(ctx context.Context, p *model.AcademicProgram) error {
	if p.Status == "" {
		p.Status = model.ProgramaActivo
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Faculty{}, p.FacultyID, "faculty"); err != nil {
			return err
		}
		return storeErr("create program", tx.Omit(clause.Associations).Create(p).Error)
	})
}

// Get loads one program with its faculty
func (s *ProgramService) Get(ctx context.Context, id uint) (*model.AcademicProgram, error) {
	var p model.AcademicProgram
	if err := findByID(s.db.WithContext(ctx).Preload("Faculty"), &p, id, "program"); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns programs ordered by name
func (s *ProgramService) List(ctx context.Context, filter ProgramFilter, params ListParams) (*Page[model.AcademicProgram], error) {
	query := s.db.WithContext(ctx).Model(&model.AcademicProgram{})
	if filter.FacultyID != 0 {
		query = query.Where("facultad_id = ?", filter.FacultyID)
	}
	if filter.Status != "" {
		query = query.Where("estado = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("codigo ILIKE ? OR nombre ILIKE ?", like, like)
	}
	return paginate[model.AcademicProgram](query, params, "nombre ASC", "Faculty")
}

// Update applies changes to a program. A changed faculty must exist.
func (s *ProgramService) Update(ctx context.Context, id uint, apply func(*model.AcademicProgram) error) (*model.AcademicProgram, error) {
	var p model.AcademicProgram
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &p, id, "program"); err != nil {
			return err
		}
		before := p.FacultyID
		if err := apply(&p); err != nil {
			return err
		}
		p.ID = id
		if p.FacultyID != before {
			if err := mustExist(tx, &model.Faculty{}, p.FacultyID, "faculty"); err != nil {
				return err
			}
		}
		p.Faculty = nil
		return storeErr("update program", tx.Omit(clause.Associations).Save(&p).Error)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a program. It is restricted while students belong to it.
func (s *ProgramService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.AcademicProgram
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &p, id, "program"); err != nil {
			return err
		}
		students, err := countWhere(tx, &model.Student{}, "programa_id", id)
		if err != nil {
			return fmt.Errorf("failed to count students: %w", err)
		}
		if students > 0 {
			return database.Restricted("program "+p.Code, fmt.Sprintf("%d students", students))
		}
		return deleteByID(tx, &model.AcademicProgram{}, id, "program")
	})
}

// Students lists the students of a program
func (s *ProgramService) Students(ctx context.Context, id uint, params ListParams) (*Page[model.Student], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.AcademicProgram{}, id, "program"); err != nil {
		return nil, err
	}
	return paginate[model.Student](db.Model(&model.Student{}).Where("programa_id = ?", id), params, "id ASC", "User")
}
