package agenda

import (
	"errors"
	"time"

	"github.com/frahmantamala/task-management/internal/core/common/validation"
)

// Commitment represents a row of the compromisos table: a manager's
// personal calendar entry, visible only to its owner.
type Commitment struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"titulo" gorm:"column:titulo;not null"`
	Description *string   `json:"descripcion" gorm:"column:descripcion"`
	Date        time.Time `json:"fecha" gorm:"column:fecha;not null"`
	ManagerID   int64     `json:"jefe_id" gorm:"column:jefe_id;not null"`
}

// TableName returns the table name for GORM
func (Commitment) TableName() string {
	return "compromisos"
}

// Event is a calendar entry in the month view, either a task deadline or a
// personal commitment.
type Event struct {
	ID    int64     `json:"id"`
	Title string    `json:"titulo" gorm:"column:titulo"`
	Date  time.Time `json:"fecha" gorm:"column:fecha"`
	Kind  string    `json:"tipo" gorm:"column:tipo"`
}

// MonthEvents is the agenda response: task deadlines plus the caller's own
// commitments for one month. Leaves is a reserved key the frontend already
// renders; no leave-request source exists yet so it is always empty.
type MonthEvents struct {
	Tasks       []*Event `json:"tareas"`
	Leaves      []*Event `json:"permisos"`
	Commitments []*Event `json:"compromisos"`
}

// CreateCommitmentDTO is the payload for a new commitment.
type CreateCommitmentDTO struct {
	Title       string     `json:"titulo"`
	Description *string    `json:"descripcion"`
	Date        *time.Time `json:"fecha"`
}

func (dto CreateCommitmentDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("titulo", dto.Title).Required().MaxLength(300)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	if dto.Date == nil || dto.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Domain errors
var (
	ErrMissingDate        = errors.New("fecha is required")
	ErrCommitmentNotFound = errors.New("commitment not found")
	ErrInvalidMonth       = errors.New("anio and mes are required")
)
