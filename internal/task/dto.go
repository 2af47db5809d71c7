package task

import (
	"time"

	errors "github.com/frahmantamala/task-management/internal"
	"github.com/frahmantamala/task-management/internal/core/common/validation"
)

// CreateTaskDTO is the payload for creating a task. The creator comes from
// the authenticated identity, never from the body.
type CreateTaskDTO struct {
	Title        string     `json:"titulo"`
	Description  *string    `json:"descripcion"`
	DueDate      *time.Time `json:"fecha_limite"`
	AssigneeID   *int64     `json:"asignado_id"`
	DepartmentID *int64     `json:"departamento_id"`
	SubDates     *string    `json:"sub_fechas"`
}

func (dto CreateTaskDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("titulo", dto.Title).Required().MaxLength(300)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	if dto.AssigneeID == nil && dto.DepartmentID == nil {
		return errors.NewValidationError(
			"an assignee or a department is required",
			errors.ErrCodeMissingAssignee,
		)
	}
	return nil
}

// UpdateStatusDTO carries a status transition.
type UpdateStatusDTO struct {
	Status string `json:"estado"`
}

func (dto UpdateStatusDTO) Validate() error {
	if dto.Status == "" {
		return errors.NewValidationError("estado is required", errors.ErrCodeValidationFailed)
	}
	if !ValidStatus(dto.Status) {
		return errors.NewValidationError(
			"estado must be one of pendiente, en_progreso, completada",
			errors.ErrCodeInvalidStatus,
		)
	}
	return nil
}

// ListFilter is the manager-view listing predicate. The same filter feeds
// both the page query and the count query so totalPages stays consistent.
type ListFilter struct {
	Page         int
	Limit        int
	EmployeeID   *int64
	DepartmentID *int64
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// PagedTasks is the manager-view response envelope.
type PagedTasks struct {
	Tasks       []*View `json:"tareas"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	Total       int64   `json:"total"`
}
