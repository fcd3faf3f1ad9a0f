package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentService manages student profiles
type StudentService struct {
	db *gorm.DB
}

// NewStudentService creates a new student service
func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

// StudentFilter narrows student lists
type StudentFilter struct {
	ProgramID uint
	Status    model.EstadoAcademicoEstudiante
	Search    string // matches the user's email or full name, or the document number
}

// Create inserts a student profile for an existing user in an existing program.
// A user has at most one student profile.
func (s *StudentService) Create(ctx context.Context, st *model.Student) error {
	if st.Status == "" {
		st.Status = model.EstudianteMatriculado
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.User{}, st.UserID, "user"); err != nil {
			return err
		}
		if err := mustExist(tx, &model.AcademicProgram{}, st.ProgramID, "program"); err != nil {
			return err
		}
		return storeErr("create student", tx.Omit(clause.Associations).Create(st).Error)
	})
}

// Get loads one student with user and program
func (s *StudentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	var st model.Student
	if err := findByID(s.db.WithContext(ctx).Preload("User").Preload("Program"), &st, id, "student"); err != nil {
		return nil, err
	}
	return &st, nil
}

// List returns students ordered by id
func (s *StudentService) List(ctx context.Context, filter StudentFilter, params ListParams) (*Page[model.Student], error) {
	query := s.db.WithContext(ctx).Model(&model.Student{})
	if filter.ProgramID != 0 {
		query = query.Where("estudiantes.programa_id = ?", filter.ProgramID)
	}
	if filter.Status != "" {
		query = query.Where("estudiantes.estado_academico = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Joins("JOIN usuarios ON usuarios.id = estudiantes.usuario_id").
			Where("usuarios.email ILIKE ? OR usuarios.nombre_completo ILIKE ? OR estudiantes.documento_numero ILIKE ?", like, like, like)
	}
	return paginate[model.Student](query, params, "estudiantes.id ASC", "User", "Program")
}

// Update applies changes to a student. Changed references must exist.
func (s *StudentService) Update(ctx context.Context, id uint, apply func(*model.Student) error) (*model.Student, error) {
	var st model.Student
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &st, id, "student"); err != nil {
			return err
		}
		userBefore, programBefore := st.UserID, st.ProgramID
		if err := apply(&st); err != nil {
			return err
		}
		st.ID = id
		if st.UserID != userBefore {
			if err := mustExist(tx, &model.User{}, st.UserID, "user"); err != nil {
				return err
			}
		}
		if st.ProgramID != programBefore {
			if err := mustExist(tx, &model.AcademicProgram{}, st.ProgramID, "program"); err != nil {
				return err
			}
		}
		st.User, st.Program = nil, nil
		return storeErr("update student", tx.Omit(clause.Associations).Save(&st).Error)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Delete removes a student profile with its enrollments, attendance,
// submissions and grades
func (s *StudentService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteByID(tx, &model.Student{}, id, "student")
	})
}

// Enrollments lists the enrollments of a student with their groups
func (s *StudentService) Enrollments(ctx context.Context, id uint, params ListParams) (*Page[model.Enrollment], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Student{}, id, "student"); err != nil {
		return nil, err
	}
	return paginate[model.Enrollment](db.Model(&model.Enrollment{}).Where("estudiante_id = ?", id), params, "fecha_inscripcion DESC", "Group.Course")
}

// ProfessorService manages professor profiles
type ProfessorService struct {
	db *gorm.DB
}

// NewProfessorService creates a new professor service
func NewProfessorService(db *gorm.DB) *ProfessorService {
	return &ProfessorService{db: db}
}

// ProfessorFilter narrows professor lists
type ProfessorFilter struct {
	FacultyID uint
	Search    string
}

// Create inserts a professor profile for an existing user. The faculty is optional.
func (s *ProfessorService) Create(ctx context.Context, p *model.Professor) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.User{}, p.UserID, "user"); err != nil {
			return err
		}
		if p.FacultyID != nil {
			if err := mustExist(tx, &model.Faculty{}, *p.FacultyID, "faculty"); err != nil {
				return err
			}
		}
		return storeErr("create professor", tx.Omit(clause.Associations).Create(p).Error)
	})
}

// Get loads one professor with user and faculty
func (s *ProfessorService) Get(ctx context.Context, id uint) (*model.Professor, error) {
	var p model.Professor
	if err := findByID(s.db.WithContext(ctx).Preload("User").Preload("Faculty"), &p, id, "professor"); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns professors ordered by id
func (s *ProfessorService) List(ctx context.Context, filter ProfessorFilter, params ListParams) (*Page[model.Professor], error) {
	query := s.db.WithContext(ctx).Model(&model.Professor{})
	if filter.FacultyID != 0 {
		query = query.Where("profesores.facultad_id = ?", filter.FacultyID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Joins("JOIN usuarios ON usuarios.id = profesores.usuario_id").
			Where("usuarios.email ILIKE ? OR usuarios.nombre_completo ILIKE ?", like, like)
	}
	return paginate[model.Professor](query, params, "profesores.id ASC", "User", "Faculty")
}

// Update applies changes to a professor. Changed references must exist.
func (s *ProfessorService) Update(ctx context.Context, id uint, apply func(*model.Professor) error) (*model.Professor, error) {
	var p model.Professor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &p, id, "professor"); err != nil {
			return err
		}
		userBefore := p.UserID
		if err := apply(&p); err != nil {
			return err
		}
		p.ID = id
		if p.UserID != userBefore {
			if err := mustExist(tx, &model.User{}, p.UserID, "user"); err != nil {
				return err
			}
		}
		if p.FacultyID != nil {
			if err := mustExist(tx, &model.Faculty{}, *p.FacultyID, "faculty"); err != nil {
				return err
			}
		}
		p.User, p.Faculty = nil, nil
		return storeErr("update professor", tx.Omit(clause.Associations).Save(&p).Error)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a professor profile. It is restricted while the professor teaches groups.
func (s *ProfessorService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &model.Professor{}, id, "professor"); err != nil {
			return err
		}
		groups, err := countWhere(tx, &model.Group{}, "profesor_id", id)
		if err != nil {
			return fmt.Errorf("failed to count groups: %w", err)
		}
		if groups > 0 {
			return database.Restricted(fmt.Sprintf("professor %d", id), fmt.Sprintf("%d groups", groups))
		}
		return deleteByID(tx, &model.Professor{}, id, "professor")
	})
}

// Groups lists the groups taught by a professor
func (s *ProfessorService) Groups(ctx context.Context, id uint, params ListParams) (*Page[model.Group], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Professor{}, id, "professor"); err != nil {
		return nil, err
	}
	return paginate[model.Group](db.Model(&model.Group{}).Where("profesor_id = ?", id), params, "periodo DESC, codigo ASC", "Course")
}
