package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceService records per-date attendance of enrollments
type AttendanceService struct {
	db *gorm.DB
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// AttendanceFilter narrows attendance lists. From and To are inclusive dates.
type AttendanceFilter struct {
	GroupID      uint
	EnrollmentID uint
	Status       model.EstadoAsistencia
	From         *time.Time
	To           *time.Time
}

// RosterEntry is one line of a group roster for RecordRoster
type RosterEntry struct {
	EnrollmentID uint
	Status       model.EstadoAsistencia
	Notes        *string
}

// enrollmentGroup returns the group of an enrollment
func enrollmentGroup(tx *gorm.DB, enrollmentID uint) (uint, error) {
	var e model.Enrollment
	if err := tx.Select("id", "grupo_id").First(&e, enrollmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, database.NotFound("enrollment", enrollmentID)
		}
		return 0, fmt.Errorf("failed to load enrollment %d: %w", enrollmentID, err)
	}
	return e.GroupID, nil
}

// Create records attendance for an enrollment on a date. The group is copied from
// the enrollment. A second record for the same (enrollment, date) fails with
// ErrDuplicateKey.
func (s *AttendanceService) Create(ctx context.Context, a *model.Attendance) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		groupID, err := enrollmentGroup(tx, a.EnrollmentID)
		if err != nil {
			return err
		}
		a.GroupID = groupID
		return storeErr("create attendance", tx.Omit(clause.Associations).Create(a).Error)
	})
}

// Get loads one attendance record
func (s *AttendanceService) Get(ctx context.Context, id uint) (*model.Attendance, error) {
	var a model.Attendance
	if err := findByID(s.db.WithContext(ctx).Preload("Enrollment.Student.User"), &a, id, "attendance"); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns attendance records ordered by date
func (s *AttendanceService) List(ctx context.Context, filter AttendanceFilter, params ListParams) (*Page[model.Attendance], error) {
	query := s.db.WithContext(ctx).Model(&model.Attendance{})
	if filter.GroupID != 0 {
		query = query.Where("grupo_id = ?", filter.GroupID)
	}
	if filter.EnrollmentID != 0 {
		query = query.Where("inscripcion_id = ?", filter.EnrollmentID)
	}
	if filter.Status != "" {
		query = query.Where("estado = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("fecha >= ?", datatypes.Date(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("fecha <= ?", datatypes.Date(*filter.To))
	}
	return paginate[model.Attendance](query, params, "fecha DESC, inscripcion_id ASC")
}

// Update applies changes to an attendance record. The group always follows the
// enrollment, whatever apply sets.
func (s *AttendanceService) Update(ctx context.Context, id uint, apply func(*model.Attendance) error) (*model.Attendance, error) {
	var a model.Attendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &a, id, "attendance"); err != nil {
			return err
		}
		if err := apply(&a); err != nil {
			return err
		}
		a.ID = id
		groupID, err := enrollmentGroup(tx, a.EnrollmentID)
		if err != nil {
			return err
		}
		a.GroupID = groupID
		a.Enrollment, a.Group = nil, nil
		return storeErr("update attendance", tx.Omit(clause.Associations).Save(&a).Error)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an attendance record
func (s *AttendanceService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &model.Attendance{}, id, "attendance")
}

// checkRosterEntries rejects a roster that lists an enrollment twice. One upsert
// statement cannot touch the same (enrollment, date) row twice.
func checkRosterEntries(entries []RosterEntry) error {
	seen := make(map[uint]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.EnrollmentID] {
			return fmt.Errorf("enrollment %d: %w", entry.EnrollmentID, ErrDuplicateRosterEntry)
		}
		seen[entry.EnrollmentID] = true
	}
	return nil
}

// RecordRoster writes the attendance of several enrollments of one group on one
// date. Existing records for that date are overwritten. Every enrollment must
// belong to the group; the whole roster is written or nothing is.
func (s *AttendanceService) RecordRoster(ctx context.Context, groupID uint, date time.Time, entries []RosterEntry) ([]model.Attendance, error) {
	if err := checkRosterEntries(entries); err != nil {
		return nil, err
	}
	rows := make([]model.Attendance, 0, len(entries))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Group{}, groupID, "group"); err != nil {
			return err
		}
		for _, entry := range entries {
			g, err := enrollmentGroup(tx, entry.EnrollmentID)
			if err != nil {
				return err
			}
			if g != groupID {
				return fmt.Errorf("enrollment %d is not in group %d: %w", entry.EnrollmentID, groupID, database.ErrForeignKey)
			}
			rows = append(rows, model.Attendance{
				EnrollmentID: entry.EnrollmentID,
				GroupID:      groupID,
				Date:         datatypes.Date(date),
				Status:       entry.Status,
				Notes:        entry.Notes,
			})
		}
		if len(rows) == 0 {
			return nil
		}
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "inscripcion_id"}, {Name: "fecha"}},
			DoUpdates: clause.AssignmentColumns([]string{"estado", "observaciones", "grupo_id", "updated_at"}),
		}).Create(&rows).Error
		return storeErr("record roster", err)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
