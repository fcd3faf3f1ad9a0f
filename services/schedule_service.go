package services

import (
	"context"

	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleService manages the weekly time blocks of groups
type ScheduleService struct {
	db *gorm.DB
}

// NewScheduleService creates a new schedule service
func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// checkRange enforces end > start ahead of chk_horarios_rango
func checkRange(sc *model.Schedule) error {
	if sc.EndTime <= sc.StartTime {
		return ErrInvalidTimeRange
	}
	return nil
}

// Create inserts a schedule for an existing group. End must be after start.
func (s *ScheduleService) Create(ctx context.Context, sc *model.Schedule) error {
	if err := checkRange(sc); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Group{}, sc.GroupID, "group"); err != nil {
			return err
		}
		return storeErr("create schedule", tx.Omit(clause.Associations).Create(sc).Error)
	})
}

// Get loads one schedule
func (s *ScheduleService) Get(ctx context.Context, id uint) (*model.Schedule, error) {
	var sc model.Schedule
	if err := findByID(s.db.WithContext(ctx), &sc, id, "schedule"); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Update applies changes to a schedule. The resulting range must still be valid.
func (s *ScheduleService) Update(ctx context.Context, id uint, apply func(*model.Schedule) error) (*model.Schedule, error) {
	var sc model.Schedule
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &sc, id, "schedule"); err != nil {
			return err
		}
		groupBefore := sc.GroupID
		if err := apply(&sc); err != nil {
			return err
		}
		sc.ID = id
		if err := checkRange(&sc); err != nil {
			return err
		}
		if sc.GroupID != groupBefore {
			if err := mustExist(tx, &model.Group{}, sc.GroupID, "group"); err != nil {
				return err
			}
		}
		sc.Group = nil
		return storeErr("update schedule", tx.Omit(clause.Associations).Save(&sc).Error)
	})
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// Delete removes a schedule
func (s *ScheduleService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.Schedule{}, id, "schedule")
}
