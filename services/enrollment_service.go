package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentService manages the link between students and groups
type EnrollmentService struct {
	db *gorm.DB
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// EnrollmentFilter narrows enrollment lists
type EnrollmentFilter struct {
	StudentID uint
	GroupID   uint
}

// lockGroupSeat locks the group row and fails when the group is at capacity.
// Concurrent enrollments into the same group serialize on the lock.
func lockGroupSeat(tx *gorm.DB, groupID uint) error {
	var g model.Group
	if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &g, groupID, "group"); err != nil {
		return err
	}
	enrolled, err := countWhere(tx, &model.Enrollment{}, "grupo_id", groupID)
	if err != nil {
		return fmt.Errorf("failed to count enrollments: %w", err)
	}
	if enrolled >= int64(g.Capacity) {
		return ErrGroupFull
	}
	return nil
}

// Create enrolls a student in a group. A student enrolls in a group at most once.
func (s *EnrollmentService) Create(ctx context.Context, e *model.Enrollment) error {
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Student{}, e.StudentID, "student"); err != nil {
			return err
		}
		if err := lockGroupSeat(tx, e.GroupID); err != nil {
			return err
		}
		return storeErr("create enrollment", tx.Omit(clause.Associations).Create(e).Error)
	})
}

// Get loads one enrollment with student and group
func (s *EnrollmentService) Get(ctx context.Context, id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	if err := findByID(s.db.WithContext(ctx).Preload("Student.User").Preload("Group.Course"), &e, id, "enrollment"); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns enrollments, newest first
func (s *EnrollmentService) List(ctx context.Context, filter EnrollmentFilter, params ListParams) (*Page[model.Enrollment], error) {
	query := s.db.WithContext(ctx).Model(&model.Enrollment{})
	if filter.StudentID != 0 {
		query = query.Where("estudiante_id = ?", filter.StudentID)
	}
	if filter.GroupID != 0 {
		query = query.Where("grupo_id = ?", filter.GroupID)
	}
	return paginate[model.Enrollment](query, params, "fecha_inscripcion DESC")
}

// Update applies changes to an enrollment. Moving it to another group also moves
// the denormalised group of its attendance rows in the same transaction. An
// enrollment with submissions cannot move: they belong to activities of its group.
func (s *EnrollmentService) Update(ctx context.Context, id uint, apply func(*model.Enrollment) error) (*model.Enrollment, error) {
	var e model.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &e, id, "enrollment"); err != nil {
			return err
		}
		studentBefore, groupBefore := e.StudentID, e.GroupID
		if err := apply(&e); err != nil {
			return err
		}
		e.ID = id
		if e.StudentID != studentBefore {
			if err := mustExist(tx, &model.Student{}, e.StudentID, "student"); err != nil {
				return err
			}
		}
		if e.GroupID != groupBefore {
			submissions, err := countWhere(tx, &model.Submission{}, "inscripcion_id", id)
			if err != nil {
				return fmt.Errorf("failed to count submissions: %w", err)
			}
			if submissions > 0 {
				return database.Restricted(fmt.Sprintf("enrollment %d", id), fmt.Sprintf("%d submissions", submissions))
			}
			if err := lockGroupSeat(tx, e.GroupID); err != nil {
				return err
			}
		}
		e.Student, e.Group = nil, nil
		if err := tx.Omit(clause.Associations).Save(&e).Error; err != nil {
			return storeErr("update enrollment", err)
		}
		if e.GroupID != groupBefore {
			if err := syncAttendanceGroup(tx, e.ID, e.GroupID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// syncAttendanceGroup copies the enrollment's group onto its attendance rows
func syncAttendanceGroup(tx *gorm.DB, enrollmentID, groupID uint) error {
	err := tx.Model(&model.Attendance{}).
		Where("inscripcion_id = ? AND grupo_id <> ?", enrollmentID, groupID).
		Update("grupo_id", groupID).Error
	return storeErr("sync attendance group", err)
}

// Delete removes an enrollment with its attendance, submissions and grades
func (s *EnrollmentService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteByID(tx, &model.Enrollment{}, id, "enrollment")
	})
}

// Attendance lists the attendance records of an enrollment by date
func (s *EnrollmentService) Attendance(ctx context.Context, id uint) ([]model.Attendance, error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Enrollment{}, id, "enrollment"); err != nil {
		return nil, err
	}
	var out []model.Attendance
	if err := db.Where("inscripcion_id = ?", id).Order("fecha ASC").Find(&out).Error; err != nil {
		return nil, storeErr("list attendance", err)
	}
	return out, nil
}

// BelongsToUser reports whether the enrollment's student profile is the one of userID
func (s *EnrollmentService) BelongsToUser(ctx context.Context, id, userID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Enrollment{}).
		Joins("JOIN estudiantes ON estudiantes.id = inscripciones.estudiante_id").
		Where("inscripciones.id = ? AND estudiantes.usuario_id = ?", id, userID).
		Count(&n).Error
	if err != nil {
		return false, storeErr("check enrollment owner", err)
	}
	return n > 0, nil
}
