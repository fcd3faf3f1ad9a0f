package model

import "time"

// Role groups users by what they are allowed to do
type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:nombre;type:varchar(50);not null;uniqueIndex:uq_roles_nombre" json:"nombre"`
	Description string    `gorm:"column:descripcion;type:text" json:"descripcion"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

// Built-in role names
const (
	RoleAdmin     = "admin"
	RoleProfessor = "profesor"
	RoleStudent   = "estudiante"
)

// User is an account that can sign in. Student and Professor profiles extend it 1:1.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_usuarios_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	FullName     string    `gorm:"column:nombre_completo;type:varchar(200);not null" json:"nombre_completo"`
	RoleID       uint      `gorm:"column:rol_id;not null;index" json:"rol_id"`
	Active       bool      `gorm:"column:activo;not null" json:"activo"`
	TokenVersion int       `gorm:"column:token_version;not null;default:0" json:"-"` // bump to invalidate every issued token
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Role *Role `gorm:"foreignKey:RoleID;constraint:fk_usuarios_rol,OnUpdate:CASCADE,OnDelete:RESTRICT" json:"rol,omitempty"`
}

func (User) TableName() string { return "usuarios" }

// RoleName returns the loaded role name, empty when Role was not preloaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
