package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/datatypes"
)

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end datatypes.Time
		wantErr    bool
	}{
		{"end after start", datatypes.NewTime(8, 0, 0, 0), datatypes.NewTime(10, 0, 0, 0), false},
		{"one second long", datatypes.NewTime(8, 0, 0, 0), datatypes.NewTime(8, 0, 1, 0), false},
		{"end equals start", datatypes.NewTime(8, 0, 0, 0), datatypes.NewTime(8, 0, 0, 0), true},
		{"end before start", datatypes.NewTime(10, 0, 0, 0), datatypes.NewTime(8, 0, 0, 0), true},
		{"end at midnight", datatypes.NewTime(22, 0, 0, 0), datatypes.NewTime(0, 0, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRange(&model.Schedule{StartTime: tt.start, EndTime: tt.end})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeRange) || !errors.Is(err, database.ErrCheckViolation) {
					t.Errorf("checkRange() = %v, want ErrInvalidTimeRange", err)
				}
				return
			}
			if err != nil {
				t.Errorf("checkRange() = %v, want nil", err)
			}
		})
	}
}

func TestCheckRosterEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []RosterEntry
		wantErr bool
	}{
		{"empty", nil, false},
		{"distinct", []RosterEntry{{EnrollmentID: 1}, {EnrollmentID: 2}, {EnrollmentID: 3}}, false},
		{"repeated", []RosterEntry{{EnrollmentID: 1}, {EnrollmentID: 2}, {EnrollmentID: 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRosterEntries(tt.entries)
			if tt.wantErr != (err != nil) {
				t.Fatalf("checkRosterEntries() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, database.ErrCheckViolation) {
				t.Errorf("error %v does not match ErrCheckViolation", err)
			}
		})
	}
}

// The store is never reached for these inputs, so the service runs without a database.
func TestRejectedBeforeStore(t *testing.T) {
	ctx := context.Background()

	if err := NewGradeService(nil).Create(ctx, &model.Grade{SubmissionID: 1, Score: -0.5}); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative score: got %v, want ErrNegativeScore", err)
	}

	sc := model.Schedule{GroupID: 1, StartTime: datatypes.NewTime(9, 0, 0, 0), EndTime: datatypes.NewTime(9, 0, 0, 0)}
	if err := NewScheduleService(nil).Create(ctx, &sc); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("empty schedule range: got %v, want ErrInvalidTimeRange", err)
	}

	roster := []RosterEntry{{EnrollmentID: 5, Status: model.AsistenciaPresente}, {EnrollmentID: 5, Status: model.AsistenciaAusente}}
	if _, err := NewAttendanceService(nil).RecordRoster(ctx, 1, sc.CreatedAt, roster); !errors.Is(err, ErrDuplicateRosterEntry) {
		t.Errorf("repeated roster entry: got %v, want ErrDuplicateRosterEntry", err)
	}
}
