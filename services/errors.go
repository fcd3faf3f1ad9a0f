package services

import (
	"errors"
	"fmt"

	"github.com/sahilchouksey/academia-api/database"
)

// Value constraint failures. They match database.ErrCheckViolation with errors.Is.
var (
	ErrInvalidTimeRange     = fmt.Errorf("end time must be after start time: %w", database.ErrCheckViolation)
	ErrNegativeScore        = fmt.Errorf("score must not be negative: %w", database.ErrCheckViolation)
	ErrGroupFull            = fmt.Errorf("group has no seats left: %w", database.ErrCheckViolation)
	ErrDuplicateRosterEntry = fmt.Errorf("enrollment listed more than once: %w", database.ErrCheckViolation)
)

// ErrSubmissionGraded refuses owner changes to a graded submission. It matches
// database.ErrRestricted.
var ErrSubmissionGraded = fmt.Errorf("submission has already been graded: %w", database.ErrRestricted)

// ErrAttachmentsDisabled is returned when no object storage is configured
var ErrAttachmentsDisabled = errors.New("attachment storage is not configured")
