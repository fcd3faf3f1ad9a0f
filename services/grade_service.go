package services

import (
	"context"
	"time"

	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GradeService records the evaluation of submissions. A submission has at most one grade.
type GradeService struct {
	db *gorm.DB
}

// NewGradeService creates a new grade service
func NewGradeService(db *gorm.DB) *GradeService {
	return &GradeService{db: db}
}

// GradeFilter narrows grade lists
type GradeFilter struct {
	ActivityID   uint
	EnrollmentID uint
	UserID       uint // only grades of this student user
}

// GradeChange is the mutable part of a grade
type GradeChange struct {
	Score    *float64
	Feedback *string
}

// Create grades a submission. A negative score fails with ErrNegativeScore and a
// second grade for the same submission with ErrDuplicateKey. Scores above the
// activity's max score are accepted.
func (s *GradeService) Create(ctx context.Context, g *model.Grade) error {
	if g.Score < 0 {
		return ErrNegativeScore
	}
	if g.GradedAt.IsZero() {
		g.GradedAt = time.Now()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// shares the row lock owners take to change the submission
		if err := mustExist(tx.Clauses(clause.Locking{Strength: "SHARE"}), &model.Submission{}, g.SubmissionID, "submission"); err != nil {
			return err
		}
		return storeErr("create grade", tx.Omit(clause.Associations).Create(g).Error)
	})
}

// Get loads one grade
func (s *GradeService) Get(ctx context.Context, id uint) (*model.Grade, error) {
	var g model.Grade
	if err := findByID(s.db.WithContext(ctx), &g, id, "grade"); err != nil {
		return nil, err
	}
	return &g, nil
}

// BelongsToUser reports whether the grade is of a submission by the user's student profile
func (s *GradeService) BelongsToUser(ctx context.Context, id, userID uint) (bool, error) {
	db := s.db.WithContext(ctx)
	var n int64
	err := db.Model(&model.Grade{}).
		Joins("JOIN entregas ON entregas.id = calificaciones.entrega_id").
		Where("calificaciones.id = ? AND entregas.inscripcion_id IN (?)", id, userEnrollments(db, userID)).
		Count(&n).Error
	if err != nil {
		return false, storeErr("check grade owner", err)
	}
	return n > 0, nil
}

// List returns grades, most recent first
func (s *GradeService) List(ctx context.Context, filter GradeFilter, params ListParams) (*Page[model.Grade], error) {
	db := s.db.WithContext(ctx)
	query := db.Model(&model.Grade{})
	if filter.ActivityID != 0 || filter.EnrollmentID != 0 || filter.UserID != 0 {
		query = query.Joins("JOIN entregas ON entregas.id = calificaciones.entrega_id")
		if filter.ActivityID != 0 {
			query = query.Where("entregas.actividad_id = ?", filter.ActivityID)
		}
		if filter.EnrollmentID != 0 {
			query = query.Where("entregas.inscripcion_id = ?", filter.EnrollmentID)
		}
		if filter.UserID != 0 {
			query = query.Where("entregas.inscripcion_id IN (?)", userEnrollments(db, filter.UserID))
		}
	}
	return paginate[model.Grade](query, params, "calificaciones.fecha_calificacion DESC")
}

// Update changes the score and feedback of a grade under a row lock and
// refreshes its grading time
func (s *GradeService) Update(ctx context.Context, id uint, change GradeChange) (*model.Grade, error) {
	return s.update(ctx, change, func(tx *gorm.DB, g *model.Grade) error {
		return findByID(tx, g, id, "grade")
	})
}

// UpdateForSubmission is Update addressed by the submission
func (s *GradeService) UpdateForSubmission(ctx context.Context, submissionID uint, change GradeChange) (*model.Grade, error) {
	return s.update(ctx, change, func(tx *gorm.DB, g *model.Grade) error {
		if err := tx.Where("entrega_id = ?", submissionID).First(g).Error; err != nil {
			return storeErr("load grade of submission", err)
		}
		return nil
	})
}

func (s *GradeService) update(ctx context.Context, change GradeChange, load func(*gorm.DB, *model.Grade) error) (*model.Grade, error) {
	if change.Score != nil && *change.Score < 0 {
		return nil, ErrNegativeScore
	}
	var g model.Grade
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := load(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &g); err != nil {
			return err
		}
		if change.Score != nil {
			g.Score = *change.Score
		}
		if change.Feedback != nil {
			g.Feedback = change.Feedback
		}
		g.GradedAt = time.Now()
		g.Submission = nil
		return storeErr("update grade", tx.Omit(clause.Associations).Save(&g).Error)
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes a grade
func (s *GradeService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.Grade{}, id, "grade")
}
