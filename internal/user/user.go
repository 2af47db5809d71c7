package user

import (
	"errors"
	"time"
)

// User represents a row of the usuarios table.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"nombre_completo" gorm:"column:nombre_completo;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	Role         string    `json:"rol" gorm:"column:rol;not null"`
	DepartmentID *int64    `json:"departamento_id" gorm:"column:departamento_id"`
	CreatedAt    time.Time `json:"fecha_creacion" gorm:"column:fecha_creacion;default:now()"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "usuarios"
}

// EmployeeView is the listing shape for the manager's people screens,
// carrying the resolved department name.
type EmployeeView struct {
	ID             int64   `json:"id"`
	Name           string  `json:"nombre_completo"`
	Email          string  `json:"email"`
	Role           string  `json:"rol"`
	DepartmentID   *int64  `json:"departamento_id"`
	DepartmentName *string `json:"nombre_departamento"`
}

// Domain errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrNotEmployee    = errors.New("target user is not an employee")
	ErrUserReferenced = errors.New("user has dependent records")
)
