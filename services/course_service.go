package services

import (
	"context"

	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseService manages the course catalog
type CourseService struct {
	db *gorm.DB
}

// NewCourseService creates a new course service
func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

// CourseFilter narrows course lists
type CourseFilter struct {
	FacultyID uint
	Status    model.EstadoCurso
	Search    string
}

// Create inserts a course after checking its faculty exists
func (s *CourseService) Create(ctx context.Context, c *model.Course) error {
	if c.Status == "" {
		c.Status = model.CursoActivo
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Faculty{}, c.FacultyID, "faculty"); err != nil {
			return err
		}
		return storeErr("create course", tx.Omit(clause.Associations).Create(c).Error)
	})
}

// Get loads one course with its faculty
func (s *CourseService) Get(ctx context.Context, id uint) (*model.Course, error) {
	var c model.Course
	if err := findByID(s.db.WithContext(ctx).Preload("Faculty"), &c, id, "course"); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns courses ordered by code
func (s *CourseService) List(ctx context.Context, filter CourseFilter, params ListParams) (*Page[model.Course], error) {
	query := s.db.WithContext(ctx).Model(&model.Course{})
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
	return paginate[model.Course](query, params, "codigo ASC")
}

// Update applies changes to a course. A changed faculty must exist.
func (s *CourseService) Update(ctx context.Context, id uint, apply func(*model.Course) error) (*model.Course, error) {
	var c model.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &c, id, "course"); err != nil {
			return err
		}
		before := c.FacultyID
		if err := apply(&c); err != nil {
			return err
		}
		c.ID = id
		if c.FacultyID != before {
			if err := mustExist(tx, &model.Faculty{}, c.FacultyID, "faculty"); err != nil {
				return err
			}
		}
		c.Faculty = nil
		return storeErr("update course", tx.Omit(clause.Associations).Save(&c).Error)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a course together with its groups and everything under them.
// The cascade is carried by the fk_grupos_curso constraint chain, so one
// statement inside the transaction removes the whole subtree.
func (s *CourseService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteByID(tx, &model.Course{}, id, "course")
	})
}

// Groups lists the groups offered for a course
func (s *CourseService) Groups(ctx context.Context, id uint, params ListParams) (*Page[model.Group], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Course{}, id, "course"); err != nil {
		return nil, err
	}
	return paginate[model.Group](db.Model(&model.Group{}).Where("curso_id = ?", id), params, "periodo DESC, codigo ASC", "Professor.User")
}
