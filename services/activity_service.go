package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityService manages gradable activities of groups
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService creates a new activity service
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// ActivityFilter narrows activity lists
type ActivityFilter struct {
	GroupID uint
	Kind    string
}

func checkActivity(a *model.GradableActivity) error {
	if a.MaxScore <= 0 {
		return fmt.Errorf("max score must be positive: %w", database.ErrCheckViolation)
	}
	if a.Weight < 0 {
		return fmt.Errorf("weight must not be negative: %w", database.ErrCheckViolation)
	}
	return nil
}

// Create inserts an activity for an existing group
func (s *ActivityService) Create(ctx context.Context, a *model.GradableActivity) error {
	if a.MaxScore == 0 {
		a.MaxScore = 100
	}
	if err := checkActivity(a); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Group{}, a.GroupID, "group"); err != nil {
			return err
		}
		return storeErr("create activity", tx.Omit(clause.Associations).Create(a).Error)
	})
}

// Get loads one activity
func (s *ActivityService) Get(ctx context.Context, id uint) (*model.GradableActivity, error) {
	var a model.GradableActivity
	if err := findByID(s.db.WithContext(ctx).Preload("Group.Course"), &a, id, "activity"); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns activities ordered by due date
func (s *ActivityService) List(ctx context.Context, filter ActivityFilter, params ListParams) (*Page[model.GradableActivity], error) {
	query := s.db.WithContext(ctx).Model(&model.GradableActivity{})
	if filter.GroupID != 0 {
		query = query.Where("grupo_id = ?", filter.GroupID)
	}
	if filter.Kind != "" {
		query = query.Where("tipo = ?", filter.Kind)
	}
	return paginate[model.GradableActivity](query, params, "fecha_limite ASC NULLS LAST, id ASC")
}

// Update applies changes to an activity
func (s *ActivityService) Update(ctx context.Context, id uint, apply func(*model.GradableActivity) error) (*model.GradableActivity, error) {
	var a model.GradableActivity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &a, id, "activity"); err != nil {
			return err
		}
		groupBefore := a.GroupID
		if err := apply(&a); err != nil {
			return err
		}
		a.ID = id
		if err := checkActivity(&a); err != nil {
			return err
		}
		if a.GroupID != groupBefore {
			if err := mustExist(tx, &model.Group{}, a.GroupID, "group"); err != nil {
				return err
			}
		}
		a.Group = nil
		return storeErr("update activity", tx.Omit(clause.Associations).Save(&a).Error)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an activity with its submissions and grades
func (s *ActivityService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteByID(tx, &model.GradableActivity{}, id, "activity")
	})
}

// Submissions lists the submissions of an activity
func (s *ActivityService) Submissions(ctx context.Context, id uint, params ListParams) (*Page[model.Submission], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.GradableActivity{}, id, "activity"); err != nil {
		return nil, err
	}
	return paginate[model.Submission](db.Model(&model.Submission{}).Where("actividad_id = ?", id), params, "fecha_entrega ASC", "Enrollment.Student.User")
}
