package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/utils/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or a wrong password
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountDisabled is returned by Authenticate for an inactive user
var ErrAccountDisabled = errors.New("account is disabled")

// UserService manages user accounts
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// NewUser is the input for Create
type NewUser struct {
	Email    string
	Password string
	FullName string
	RoleID   uint
	Active   bool
}

// UserFilter narrows user lists
type UserFilter struct {
	RoleID uint
	Active *bool
	Search string // matches email or full name
}

// Create hashes the password and inserts the user after checking the role exists
func (s *UserService) Create(ctx context.Context, in NewUser) (*model.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		FullName:     in.FullName,
		RoleID:       in.RoleID,
		Active:       in.Active,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &model.Role{}, in.RoleID, "role"); err != nil {
			return err
		}
		return storeErr("create user", tx.Omit(clause.Associations).Create(user).Error)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Get loads one user with its role
func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := findByID(s.db.WithContext(ctx).Preload("Role"), &u, id, "user"); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns users ordered by email
func (s *UserService) List(ctx context.Context, filter UserFilter, params ListParams) (*Page[model.User], error) {
	query := s.db.WithContext(ctx).Model(&model.User{})
	if filter.RoleID != 0 {
		query = query.Where("rol_id = ?", filter.RoleID)
	}
	if filter.Active != nil {
		query = query.Where("activo = ?", *filter.Active)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR nombre_completo ILIKE ?", like, like)
	}
	return paginate[model.User](query, params, "email ASC", "Role")
}

// Update applies changes to a user. A changed role must exist. A new password,
// when not empty, is hashed and invalidates every token issued before.
func (s *UserService) Update(ctx context.Context, id uint, newPassword string, apply func(*model.User) error) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &u, id, "user"); err != nil {
			return err
		}
		before := u.RoleID
		if err := apply(&u); err != nil {
			return err
		}
		u.ID = id
		u.Email = strings.ToLower(u.Email)
		if u.RoleID != before {
			if err := mustExist(tx, &model.Role{}, u.RoleID, "role"); err != nil {
				return err
			}
		}
		if newPassword != "" {
			hash, err := auth.HashPassword(newPassword)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			u.PasswordHash = hash
			u.TokenVersion++
		}
		u.Role = nil
		return storeErr("update user", tx.Omit(clause.Associations).Save(&u).Error)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes a user and, through the profile constraints, its student or
// professor profile with everything the student owns. A professor that still
// teaches groups blocks the deletion.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &u, id, "user"); err != nil {
			return err
		}

		var groups int64
		err := tx.Model(&model.Group{}).
			Joins("JOIN profesores ON profesores.id = grupos.profesor_id").
			Where("profesores.usuario_id = ?", id).
			Count(&groups).Error
		if err != nil {
			return fmt.Errorf("failed to count groups: %w", err)
		}
		if groups > 0 {
			return database.Restricted("user "+u.Email, fmt.Sprintf("%d groups taught by its professor profile", groups))
		}

		return deleteByID(tx, &model.User{}, id, "user")
	})
}

// Authenticate checks an email and password pair and returns the user with its role
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Preload("Role").Where("email = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !u.Active {
		return nil, ErrAccountDisabled
	}
	return &u, nil
}
