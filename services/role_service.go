package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleService manages roles
type RoleService struct {
	db *gorm.DB
}

// NewRoleService creates a new role service
func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// Create inserts a role. Names are unique.
func (s *RoleService) Create(ctx context.Context, r *model.Role) error {
	return storeErr("create role", s.db.WithContext(ctx).Create(r).Error)
}

// Get loads one role
func (s *RoleService) Get(ctx context.Context, id uint) (*model.Role, error) {
	var r model.Role
	if err := findByID(s.db.WithContext(ctx), &r, id, "role"); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByName loads a role by its unique name
func (s *RoleService) GetByName(ctx context.Context, name string) (*model.Role, error) {
	var r model.Role
	err := s.db.WithContext(ctx).Where("nombre = ?", name).First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.NotFound("role", name)
		}
		return nil, fmt.Errorf("failed to load role %s: %w", name, err)
	}
	return &r, nil
}

// List returns all roles ordered by name
func (s *RoleService) List(ctx context.Context, params ListParams) (*Page[model.Role], error) {
	return paginate[model.Role](s.db.WithContext(ctx).Model(&model.Role{}), params, "nombre ASC")
}

// Update applies changes to a role
func (s *RoleService) Update(ctx context.Context, id uint, apply func(*model.Role) error) (*model.Role, error) {
	var r model.Role
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &r, id, "role"); err != nil {
			return err
		}
		if err := apply(&r); err != nil {
			return err
		}
		r.ID = id
		return storeErr("update role", tx.Save(&r).Error)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes a role. It is restricted while users hold it.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r model.Role
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &r, id, "role"); err != nil {
			return err
		}
		users, err := countWhere(tx, &model.User{}, "rol_id", id)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if users > 0 {
			return database.Restricted("role "+r.Name, fmt.Sprintf("%d users", users))
		}
		return deleteByID(tx, &model.Role{}, id, "role")
	})
}

// Users lists the users holding a role
func (s *RoleService) Users(ctx context.Context, id uint, params ListParams) (*Page[model.User], error) {
	db := s.db.WithContext(ctx)
	if err := mustExist(db, &model.Role{}, id, "role"); err != nil {
		return nil, err
	}
	return paginate[model.User](db.Model(&model.User{}).Where("rol_id = ?", id), params, "email ASC")
}
