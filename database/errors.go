package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Storage error kinds. Every error returned by the access layer that stems from a
// constraint is one of these, possibly wrapped.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrForeignKey     = errors.New("foreign key violation")
	ErrCheckViolation = errors.New("check constraint violation")
	ErrRequired       = errors.New("required value missing")
	ErrRestricted     = errors.New("delete restricted by dependent records")
)

// PostgreSQL SQLSTATE codes (class 23, integrity constraint violation)
const (
	codeNotNull   = "23502"
	codeForeign   = "23503"
	codeUnique    = "23505"
	codeCheck     = "23514"
	codeExclusion = "23P01"
)

// ConstraintError is a classified driver error. It matches its Kind with errors.Is and
// keeps the driver error reachable with errors.As.
type ConstraintError struct {
	Kind       error
	Constraint string
	Table      string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s (%s)", e.Kind, e.Constraint)
	}
	return e.Kind.Error()
}

func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound reports a missing row of entity.
func NotFound(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}

// Restricted reports a delete blocked by dependents, e.g. Restricted("faculty", "3 programs").
func Restricted(entity string, dependents string) error {
	return fmt.Errorf("%s is referenced by %s: %w", entity, dependents, ErrRestricted)
}

// ClassifyError converts driver and GORM errors into the storage error kinds.
// Errors that are already classified, and infrastructure errors that do not
// correspond to a kind, are returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// pgx
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if kind := kindForCode(pgxErr.Code); kind != nil {
			return &ConstraintError{Kind: kind, Constraint: pgxErr.ConstraintName, Table: pgxErr.TableName, Err: err}
		}
		return err
	}

	// lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if kind := kindForCode(string(pqErr.Code)); kind != nil {
			return &ConstraintError{Kind: kind, Constraint: pqErr.Constraint, Table: pqErr.Table, Err: err}
		}
		return err
	}

	// dialect-translated errors (gorm.Config.TranslateError)
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConstraintError{Kind: ErrDuplicateKey, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConstraintError{Kind: ErrForeignKey, Err: err}
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &ConstraintError{Kind: ErrCheckViolation, Err: err}
	}

	return err
}

// IsKind reports whether err is classified as any storage error kind.
func IsKind(err error) bool {
	return isClassified(err)
}

func isClassified(err error) bool {
	for _, kind := range []error{ErrNotFound, ErrDuplicateKey, ErrForeignKey, ErrCheckViolation, ErrRequired, ErrRestricted} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func kindForCode(code string) error {
	switch code {
	case codeUnique:
		return ErrDuplicateKey
	case codeForeign:
		return ErrForeignKey
	case codeCheck, codeExclusion:
		return ErrCheckViolation
	case codeNotNull:
		return ErrRequired
	}
	return nil
}
