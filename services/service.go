package services

import (
	"errors"
	"fmt"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
)

// Pagination defaults and bounds shared by every list operation
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams selects one page of a list
type ListParams struct {
	Page  int
	Limit int
}

// Normalize clamps the page and limit into range
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Offset is the number of rows to skip for the page
func (p ListParams) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// Page is one page of results plus the total number of matching rows
type Page[T any] struct {
	Items []T
	Total int64
	ListParams
}

// paginate counts the rows matched by query and loads the requested page into a Page.
// query must carry Model and filters; preloads are applied to the page load only
// because GORM rejects Preload together with Count.
func paginate[T any](query *gorm.DB, params ListParams, order string, preloads ...string) (*Page[T], error) {
	params = params.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", database.ClassifyError(err))
	}

	for _, p := range preloads {
		query = query.Preload(p)
	}

	items := make([]T, 0, params.Limit)
	if err := query.Order(order).Offset(params.Offset()).Limit(params.Limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", database.ClassifyError(err))
	}

	return &Page[T]{Items: items, Total: total, ListParams: params}, nil
}

// mustExist loads the row with id into dest, mapping a missing row to ErrNotFound
// named after entity. Use inside the transaction of the write it guards.
func mustExist(tx *gorm.DB, dest interface{}, id uint, entity string) error {
	if err := tx.Select("id").First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.NotFound(entity, id)
		}
		return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
	}
	return nil
}

// findByID loads a full row, mapping a missing row to ErrNotFound
func findByID(db *gorm.DB, dest interface{}, id uint, entity string) error {
	if err := db.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.NotFound(entity, id)
		}
		return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
	}
	return nil
}

// countWhere counts rows of model matching column = id
func countWhere(tx *gorm.DB, model interface{}, column string, id uint) (int64, error) {
	var n int64
	err := tx.Model(model).Where(column+" = ?", id).Count(&n).Error
	return n, err
}

// storeErr classifies err and wraps it with the failed action
func storeErr(action string, err error) error {
	if err == nil {
		return nil
	}
	err = database.ClassifyError(err)
	if database.IsKind(err) {
		return fmt.Errorf("%s: %w", action, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// deleteByID deletes one row and reports ErrNotFound when nothing matched
func deleteByID(tx *gorm.DB, model interface{}, id uint, entity string) error {
	result := tx.Delete(model, id)
	if result.Error != nil {
		return storeErr("delete "+entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NotFound(entity, id)
	}
	return nil
}

// userEnrollments is a subquery of the enrollment ids whose student profile
// belongs to the user
func userEnrollments(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&model.Enrollment{}).
		Select("inscripciones.id").
		Joins("JOIN estudiantes ON estudiantes.id = inscripciones.estudiante_id").
		Where("estudiantes.usuario_id = ?", userID)
}
