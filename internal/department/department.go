package department

import (
	"errors"

	"github.com/frahmantamala/task-management/internal/core/common/validation"
)

// Department represents a row of the departamentos table.
type Department struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Name     string `json:"nombre" gorm:"column:nombre;not null"`
	LeaderID *int64 `json:"lider_id" gorm:"column:lider_id"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departamentos"
}

// View is the listing shape with the leader's name resolved.
type View struct {
	ID         int64   `json:"id"`
	Name       string  `json:"nombre"`
	LeaderID   *int64  `json:"lider_id"`
	LeaderName *string `json:"nombre_lider"`
}

// CreateDTO covers both create and rename; only the name is writable.
type CreateDTO struct {
	Name string `json:"nombre"`
}

func (dto CreateDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("nombre", dto.Name).Required().MaxLength(200)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// AssignLeaderDTO sets or clears the department's leader.
type AssignLeaderDTO struct {
	LeaderID *int64 `json:"lider_id"`
}

// Domain errors
var (
	ErrDepartmentNotFound = errors.New("department not found")
)
