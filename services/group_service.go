package services

import (
	"context"
	"time"

	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupService manages course offerings and their reverse lookups
type GroupService struct {
	db *gorm.DB
}

// NewGroupService creates a new group service
func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// GroupFilter narrows group lists
type GroupFilter struct {
	CourseID    uint
	ProfessorID uint
	Term        string
}

// Create inserts a group after checking its course and professor exist.
// (course, code, term) is unique.
func (s *GroupService) Create(ctx context.Context, g *model.Group) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Course{}, g.CourseID, "course"); err != nil {
			return err
		}
		if err := mustExist(tx, &model.Professor{}, g.ProfessorID, "professor"); err != nil {
			return err
		}
		return storeErr("create group", tx.Omit(clause.Associations).Create(g).Error)
	})
}

// Get loads one group with course and professor
func (s *GroupService) Get(ctx context.Context, id uint) (*model.Group, error) {
	var g model.Group
	if err := findByID(s.db.WithContext(ctx).Preload("Course").Preload("Professor.User"), &g, id, "group"); err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns groups, newest term first
func (s *GroupService) List(ctx context.Context, filter GroupFilter, params ListParams) (*Page[model.Group], error) {
	query := s.db.WithContext(ctx).Model(&model.Group{})
	if filter.CourseID != 0 {
		query = query.Where("curso_id = ?", filter.CourseID)
	}
	if filter.ProfessorID != 0 {
		query = query.Where("profesor_id = ?", filter.ProfessorID)
	}
	if filter.Term != "" {
		query = query.Where("periodo = ?", filter.Term)
	}
	return paginate[model.Group](query, params, "periodo DESC, codigo ASC", "Course")
}

// Update applies changes to a group. Changed references must exist.
func (s *GroupService) Update(ctx context.Context, id uint, apply func(*model.Group) error) (*model.Group, error) {
	var g model.Group
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &g, id, "group"); err != nil {
			return err
		}
		courseBefore, professorBefore := g.CourseID, g.ProfessorID
		if err := apply(&g); err != nil {
			return err
		}
		g.ID = id
		if g.CourseID != courseBefore {
			if err := mustExist(tx, &model.Course{}, g.CourseID, "course"); err != nil {
				return err
			}
		}
		if g.ProfessorID != professorBefore {
			if err := mustExist(tx, &model.Professor{}, g.ProfessorID, "professor"); err != nil {
				return err
			}
		}
		g.Course, g.Professor = nil, nil
		return storeErr("update group", tx.Omit(clause.Associations).Save(&g).Error)
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes a group with its schedules, enrollments, attendance and activities
func (s *GroupService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteByID(tx, &model.Group{}, id, "group")
	})
}

// Schedules lists the weekly time blocks of a group
func (s *GroupService) Schedules(ctx context.Context, id uint) ([]model.Schedule, error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Group{}, id, "group"); err != nil {
		return nil, err
	}
	var out []model.Schedule
	if err := db.Where("grupo_id = ?", id).Order("dia_semana ASC, hora_inicio ASC").Find(&out).Error; err != nil {
		return nil, storeErr("list schedules", err)
	}
	return out, nil
}

// Enrollments lists the students enrolled in a group
func (s *GroupService) Enrollments(ctx context.Context, id uint, params ListParams) (*Page[model.Enrollment], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Group{}, id, "group"); err != nil {
		return nil, err
	}
	return paginate[model.Enrollment](db.Model(&model.Enrollment{}).Where("grupo_id = ?", id), params, "fecha_inscripcion ASC", "Student.User")
}

// Activities lists the gradable activities of a group
func (s *GroupService) Activities(ctx context.Context, id uint, params ListParams) (*Page[model.GradableActivity], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Group{}, id, "group"); err != nil {
		return nil, err
	}
	return paginate[model.GradableActivity](db.Model(&model.GradableActivity{}).Where("grupo_id = ?", id), params, "fecha_limite ASC NULLS LAST, id ASC")
}

// Roster returns the attendance of a group on one date, served by the
// (grupo_id, fecha) index
func (s *GroupService) Roster(ctx context.Context, id uint, date time.Time) ([]model.Attendance, error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Group{}, id, "group"); err != nil {
		return nil, err
	}
	var out []model.Attendance
	err := db.Preload("Enrollment.Student.User").
		Where("grupo_id = ? AND fecha = ?", id, datatypes.Date(date)).
		Order("inscripcion_id ASC").
		Find(&out).Error
	if err != nil {
		return nil, storeErr("load roster", err)
	}
	return out, nil
}
